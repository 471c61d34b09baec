package state

import "time"

// DefaultWorld returns the initial factory: a small, struggling operation
// with one working line, thin margins, low stock, and existing debt. Every
// field the engine reads is populated here; loaded snapshots are merged
// over this baseline so nothing downstream ever observes a missing field.
func DefaultWorld(now time.Time) *World {
	return &World{
		Production: Production{
			Lines: []*ProductionLine{
				{
					ID:              1,
					Name:            "Basic Line A",
					Type:            "Manual Bottling",
					Level:           1,
					Active:          true,
					CurrentOutput:   500,
					MaxOutput:       800,
					Efficiency:      65,
					Speed:           3,
					Status:          MaintenanceWarning,
					NextMaintenance: 12,
					OperatingCost:   150,
				},
				{
					ID:              2,
					Name:            "Basic Line B",
					Type:            "Manual Bottling",
					Level:           1,
					Active:          false,
					CurrentOutput:   0,
					MaxOutput:       800,
					Efficiency:      0,
					Speed:           3,
					Status:          MaintenanceCritical,
					NextMaintenance: 0,
					OperatingCost:   150,
				},
			},
			TotalCapacity:        1600,
			DailyProduction:      8000,
			TotalBottlesProduced: 15000,
			AverageEfficiency:    65,
			Uptime:               78,
		},
		Resources: map[ResourceType]*Resource{
			ResourceWater: {
				Name:       "Municipal Water",
				Current:    15000,
				Capacity:   25000,
				Unit:       "Liters",
				DailyUsage: 12000,
				Cost:       0.003,
				DaysLeft:   1.25,
				Supplier:   "City Water Department",
				Grade:      "Basic",
			},
			ResourceBottles: {
				Name:       "Basic Plastic Bottles",
				Current:    5000,
				Capacity:   15000,
				Unit:       "Units",
				DailyUsage: 8000,
				Cost:       0.08,
				DaysLeft:   0.6,
				Supplier:   "Local Plastics Co.",
				Grade:      "Standard",
			},
			ResourceCaps: {
				Name:       "Standard Caps",
				Current:    6000,
				Capacity:   20000,
				Unit:       "Units",
				DailyUsage: 8000,
				Cost:       0.015,
				DaysLeft:   0.75,
				Supplier:   "Cap Solutions Ltd.",
				Grade:      "Basic",
			},
			ResourceLabels: {
				Name:       "Basic Labels",
				Current:    7000,
				Capacity:   18000,
				Unit:       "Units",
				DailyUsage: 8000,
				Cost:       0.025,
				DaysLeft:   0.9,
				Supplier:   "Print & Label Co.",
				Grade:      "Standard",
			},
			ResourceFilters: {
				Name:       "Basic Water Filters",
				Current:    2,
				Capacity:   10,
				Unit:       "Units",
				DailyUsage: 0.5,
				Cost:       85,
				DaysLeft:   4,
				Supplier:   "Filter Tech Inc.",
				Grade:      "Basic",
			},
		},
		Market: Market{
			MarketShare:          2.1,
			AveragePrice:         2.25,
			CustomerSatisfaction: 72,
			BrandRecognition:     15,
			Products: []*Product{
				{
					Name:         "Clearspring Basic",
					Type:         "standard",
					Size:         "500ml",
					Price:        2.25,
					MarketPrice:  2.40,
					DailySales:   8000,
					MarketShare:  2.1,
					Demand:       45,
					DemandTrend:  -2,
					ProfitMargin: 0.52,
				},
			},
		},
		Finance: Finance{
			Cash:               45000,
			DailyRevenue:       18000,
			DailyExpenses:      16200,
			NetProfit:          1800,
			MonthlyLoanPayment: 3500,
			CreditLimit:        25000,
			Ratios: Ratios{
				GrossMargin:    47,
				NetMargin:      10,
				ROI:            4.2,
				CostPerUnit:    2.03,
				RevenuePerUnit: 2.25,
				BreakEven:      7200,
			},
		},
		ProfitLoss: ProfitLoss{
			Revenue: RevenueBreakdown{
				ProductSales: 16000,
				PremiumSales: 2000,
				Total:        18000,
			},
			Expenses: ExpenseBreakdown{
				RawMaterials: 8500,
				Labor:        3200,
				Utilities:    2100,
				Maintenance:  1400,
				LoanPayments: 1000,
				Insurance:    500,
				Rent:         1500,
				Total:        18200,
			},
			GrossProfit: 9500,
			NetProfit:   -200,
			Margins:     Margins{Gross: 52.8, Net: -1.1},
		},
		Quality: Quality{
			OverallScore:    76,
			WaterPurity:     96.2,
			BottleIntegrity: 94.1,
			LabelAccuracy:   89.5,
			FillLevel:       91.8,
			CapSeal:         93.2,
			Contamination:   0.8,
			DefectRate:      4.2,
			Actions: []*QualityAction{
				{
					Title:       "Install Basic Filtration",
					Description: "Add basic water filtration system",
					Cost:        8500,
					Impact:      3,
				},
				{
					Title:       "Staff Training",
					Description: "Basic quality control training",
					Cost:        2500,
					Impact:      2,
				},
				{
					Title:       "Equipment Calibration",
					Description: "Calibrate filling and capping machines",
					Cost:        1200,
					Impact:      4,
				},
			},
		},
		Upgrades: Upgrades{
			Available: []*Upgrade{
				{
					ID:          "basic-maintenance",
					Name:        "Basic Maintenance Kit",
					Category:    "maintenance",
					Description: "Essential tools and parts for basic equipment maintenance",
					Cost:        3500,
					Benefits:    UpgradeBenefits{ProductionBoost: 0, EfficiencyBoost: 5, CostReduction: 3},
				},
				{
					ID:          "water-testing-kit",
					Name:        "Water Testing Equipment",
					Category:    "quality",
					Description: "Basic equipment for testing water quality",
					Cost:        2800,
					Benefits:    UpgradeBenefits{QualityBoost: 5},
				},
				{
					ID:          "backup-generator",
					Name:        "Backup Power Generator",
					Category:    "reliability",
					Description: "Prevents production loss during power outages",
					Cost:        12000,
					Benefits:    UpgradeBenefits{ProductionBoost: 8, EfficiencyBoost: 2},
				},
				{
					ID:          "inventory-system",
					Name:        "Basic Inventory Tracking",
					Category:    "efficiency",
					Description: "Simple system to track raw materials and finished goods",
					Cost:        4500,
					Benefits:    UpgradeBenefits{CostReduction: 5, EfficiencyBoost: 3},
				},
			},
		},
		Research: Research{
			MonthlyBudget: 2000,
			Available: []*ResearchProject{
				{
					ID:           "water-filtration",
					Name:         "Advanced Water Filtration",
					Category:     "quality",
					Description:  "Develop superior water purification technology",
					Cost:         15000,
					DailyCost:    500,
					DurationDays: 30,
				},
				{
					ID:           "automation-basic",
					Name:         "Basic Automation",
					Category:     "efficiency",
					Description:  "Implement basic automated bottling systems",
					Cost:         25000,
					DailyCost:    800,
					DurationDays: 45,
				},
				{
					ID:           "eco-packaging",
					Name:         "Eco-Friendly Packaging",
					Category:     "sustainability",
					Description:  "Research biodegradable bottle materials",
					Cost:         12000,
					DailyCost:    400,
					DurationDays: 25,
				},
				{
					ID:           "brand-development",
					Name:         "Brand Development",
					Category:     "marketing",
					Description:  "Develop stronger brand identity and marketing",
					Cost:         8000,
					DailyCost:    300,
					DurationDays: 20,
				},
			},
		},
		Employees: Employees{
			Total:         12,
			TotalWageCost: 28800,
			Satisfaction:  68,
			TurnoverRate:  15,
			Departments: map[string]*Department{
				"production": {
					Workers:     8,
					AverageWage: 18,
					SkillLevel:  2.8,
					Efficiency:  72,
					Morale:      65,
					Positions: []*Position{
						{Name: "Line Operator", Count: 6, Wage: 16},
						{Name: "Quality Inspector", Count: 1, Wage: 22},
						{Name: "Maintenance Tech", Count: 1, Wage: 24},
					},
				},
				"management": {
					Workers:     2,
					AverageWage: 35,
					SkillLevel:  3.5,
					Efficiency:  80,
					Morale:      75,
					Positions: []*Position{
						{Name: "Production Manager", Count: 1, Wage: 40},
						{Name: "Shift Supervisor", Count: 1, Wage: 30},
					},
				},
				"support": {
					Workers:     2,
					AverageWage: 20,
					SkillLevel:  3.0,
					Efficiency:  70,
					Morale:      70,
					Positions: []*Position{
						{Name: "Administrative Assistant", Count: 1, Wage: 18},
						{Name: "Security Guard", Count: 1, Wage: 22},
					},
				},
			},
			Hiring: []*Candidate{
				{
					Name:       "Maria Rodriguez",
					Department: "production",
					Position:   "Line Operator",
					Wage:       17,
					Skill:      3,
					HiringCost: 500,
				},
				{
					Name:       "Ahmed Hassan",
					Department: "production",
					Position:   "Quality Inspector",
					Wage:       24,
					Skill:      4,
					HiringCost: 800,
				},
				{
					Name:       "Jennifer Chen",
					Department: "management",
					Position:   "Operations Manager",
					Wage:       45,
					Skill:      4,
					HiringCost: 2000,
				},
			},
			Training: []*TrainingProgram{
				{
					Name:         "Safety Training",
					Cost:         1500,
					DurationDays: 3,
					Requirement:  "All production workers",
					MoraleBoost:  5,
				},
				{
					Name:            "Quality Control Certification",
					Cost:            3000,
					DurationDays:    7,
					Requirement:     "Quality inspectors",
					QualityBoost:    8,
					EfficiencyBoost: 10,
				},
				{
					Name:            "Leadership Development",
					Cost:            5000,
					DurationDays:    14,
					Requirement:     "Management staff",
					EfficiencyBoost: 15,
					MoraleBoost:     10,
				},
			},
		},
		Loans: Loans{
			TotalDebt:       85000,
			MonthlyPayments: 3500,
			CreditScore:     650,
			Active: []*Loan{
				{
					Name:             "Equipment Loan",
					RemainingBalance: 45000,
					MonthlyPayment:   2000,
					InterestRate:     8.5,
					RemainingMonths:  24,
					TermMonths:       36,
				},
				{
					Name:             "Working Capital Line",
					RemainingBalance: 40000,
					MonthlyPayment:   1500,
					InterestRate:     12.0,
					RemainingMonths:  30,
					TermMonths:       36,
				},
			},
			Available: []*LoanOffer{
				{
					ID:           "expansion",
					Name:         "Expansion Loan",
					Description:  "Fund factory expansion and new equipment",
					MaxAmount:    150000,
					InterestRate: 9.5,
					TermMonths:   60,
				},
				{
					ID:           "equipment",
					Name:         "Equipment Financing",
					Description:  "Purchase new production equipment",
					MaxAmount:    75000,
					InterestRate: 7.5,
					TermMonths:   48,
				},
				{
					ID:           "emergency",
					Name:         "Emergency Credit Line",
					Description:  "Short-term working capital",
					MaxAmount:    25000,
					InterestRate: 15.0,
					TermMonths:   12,
				},
			},
		},
		Progress: Progress{
			StartTime:     now,
			LastSave:      now,
			CashAtDayMark: 45000,
			Milestones: map[string]bool{
				MilestoneFirstProfit:        false,
				MilestoneFirstUpgrade:       false,
				MilestoneQualityImprovement: false,
				MilestoneMarketExpansion:    false,
				MilestoneDebtFree:           false,
			},
			Challenges: []*Challenge{
				{
					ID:          "cash_crisis",
					Title:       "Cash Flow Crisis",
					Description: "Maintain positive cash flow for 7 consecutive days",
					Progress:    0,
					Target:      7,
					Active:      true,
				},
				{
					ID:          "quality_boost",
					Title:       "Quality Improvement",
					Description: "Increase overall quality score to 85%",
					Progress:    76,
					Target:      85,
					Active:      true,
				},
			},
		},
	}
}
