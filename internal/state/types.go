// Package state defines the canonical shape of the simulated factory:
// one World aggregate owning production, resources, finance, quality,
// market, upgrades, research, employees, loans, and progress. The package
// carries no behavior beyond construction, merging, and normalization —
// the tick engine and command processor own all mutation.
package state

import "time"

// MaintenanceStatus gates whether a production line may produce.
type MaintenanceStatus string

const (
	MaintenanceGood     MaintenanceStatus = "good"
	MaintenanceWarning  MaintenanceStatus = "warning"
	MaintenanceCritical MaintenanceStatus = "critical"
)

// ResourceType identifies one raw material.
type ResourceType string

const (
	ResourceWater   ResourceType = "water"
	ResourceBottles ResourceType = "bottles"
	ResourceCaps    ResourceType = "caps"
	ResourceLabels  ResourceType = "labels"
	ResourceFilters ResourceType = "filters"
)

// AllResources lists every raw material in a stable order.
var AllResources = []ResourceType{
	ResourceWater, ResourceBottles, ResourceCaps, ResourceLabels, ResourceFilters,
}

// CriticalResources are the materials without which production halts outright.
var CriticalResources = []ResourceType{ResourceWater, ResourceBottles, ResourceCaps}

// ProductionLine is one bottling line.
type ProductionLine struct {
	ID              int               `json:"id"`
	Name            string            `json:"name"`
	Type            string            `json:"type"`
	Level           int               `json:"level"`
	Active          bool              `json:"active"`
	CurrentOutput   float64           `json:"current_output"` // rated units/hour
	MaxOutput       float64           `json:"max_output"`     // upgrade ceiling
	Efficiency      float64           `json:"efficiency"`     // 0–100
	Speed           float64           `json:"speed"`          // dial, 1–10
	Status          MaintenanceStatus `json:"maintenance_status"`
	NextMaintenance float64           `json:"next_maintenance"` // hours until due
	OperatingCost   float64           `json:"operating_cost"`   // currency/hour
}

// Production aggregates all lines plus derived output figures.
type Production struct {
	Lines                []*ProductionLine `json:"lines"`
	TotalCapacity        float64           `json:"total_capacity"`
	DailyProduction      float64           `json:"daily_production"` // rated units/day
	TotalBottlesProduced float64           `json:"total_bottles_produced"`
	AverageEfficiency    float64           `json:"average_efficiency"`
	Uptime               float64           `json:"uptime"`          // % of lines running
	ProductionRate       float64           `json:"production_rate"` // units/hour, last tick
}

// Resource is one raw material stock. DaysLeft is always derived from
// Current and DailyUsage, never stored independently.
type Resource struct {
	Name       string  `json:"name"`
	Current    float64 `json:"current"`
	Capacity   float64 `json:"capacity"`
	Unit       string  `json:"unit"`
	DailyUsage float64 `json:"daily_usage"`
	Cost       float64 `json:"cost"` // currency/unit
	Ordered    float64 `json:"ordered"`
	DaysLeft   float64 `json:"days_left"`
	Supplier   string  `json:"supplier"`
	Grade      string  `json:"grade"`
}

// Ratios are display-only financial metrics, recomputed each tick.
type Ratios struct {
	GrossMargin    float64 `json:"gross_margin"`
	NetMargin      float64 `json:"net_margin"`
	ROI            float64 `json:"roi"`
	CostPerUnit    float64 `json:"cost_per_unit"`
	RevenuePerUnit float64 `json:"revenue_per_unit"`
	BreakEven      float64 `json:"break_even"`
}

// Finance is the running cash position. Cash may go negative up to the
// credit limit.
type Finance struct {
	Cash               float64 `json:"cash"`
	DailyRevenue       float64 `json:"daily_revenue"`
	DailyExpenses      float64 `json:"daily_expenses"`
	NetProfit          float64 `json:"net_profit"`
	MonthlyLoanPayment float64 `json:"monthly_loan_payment"`
	CreditLimit        float64 `json:"credit_limit"`
	Ratios             Ratios  `json:"ratios"`
}

// RevenueBreakdown splits revenue into its components.
type RevenueBreakdown struct {
	ProductSales  float64 `json:"product_sales"`
	PremiumSales  float64 `json:"premium_sales"`
	ContractSales float64 `json:"contract_sales"`
	Total         float64 `json:"total"`
}

// ExpenseBreakdown splits expenses into its components.
type ExpenseBreakdown struct {
	RawMaterials float64 `json:"raw_materials"`
	Labor        float64 `json:"labor"`
	Utilities    float64 `json:"utilities"`
	Maintenance  float64 `json:"maintenance"`
	LoanPayments float64 `json:"loan_payments"`
	Research     float64 `json:"research"`
	Insurance    float64 `json:"insurance"`
	Rent         float64 `json:"rent"`
	Total        float64 `json:"total"`
}

// Margins are P&L percentages.
type Margins struct {
	Gross float64 `json:"gross"`
	Net   float64 `json:"net"`
}

// ProfitLoss is the P&L statement, a pure aggregation of the other domains.
type ProfitLoss struct {
	Revenue     RevenueBreakdown `json:"revenue"`
	Expenses    ExpenseBreakdown `json:"expenses"`
	GrossProfit float64          `json:"gross_profit"`
	NetProfit   float64          `json:"net_profit"`
	Margins     Margins          `json:"margins"`
}

// QualityAction is one purchasable quality improvement.
type QualityAction struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Cost        float64 `json:"cost"`
	Impact      float64 `json:"impact"` // overall-score points gained
}

// Quality holds the overall score plus component scores. OverallScore is a
// smoothed function of maintenance condition and resource adequacy,
// bounded to [60,100].
type Quality struct {
	OverallScore    float64          `json:"overall_score"`
	WaterPurity     float64          `json:"water_purity"`
	BottleIntegrity float64          `json:"bottle_integrity"`
	LabelAccuracy   float64          `json:"label_accuracy"`
	FillLevel       float64          `json:"fill_level"`
	CapSeal         float64          `json:"cap_seal"`
	Contamination   float64          `json:"contamination"`
	DefectRate      float64          `json:"defect_rate"`
	Actions         []*QualityAction `json:"actions"`
}

// Product is one sellable SKU.
type Product struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Size         string  `json:"size"`
	Price        float64 `json:"price"`
	MarketPrice  float64 `json:"market_price"`
	DailySales   float64 `json:"daily_sales"`
	MarketShare  float64 `json:"market_share"`
	Demand       float64 `json:"demand"`
	DemandTrend  float64 `json:"demand_trend"`
	ProfitMargin float64 `json:"profit_margin"`
}

// Market is the commercial position.
type Market struct {
	MarketShare          float64    `json:"market_share"`
	AveragePrice         float64    `json:"average_price"`
	CustomerSatisfaction float64    `json:"customer_satisfaction"`
	BrandRecognition     float64    `json:"brand_recognition"`
	Products             []*Product `json:"products"`
}

// UpgradeBenefits are the cumulative bonuses granted by purchased upgrades.
// Merging is additive, never multiplicative.
type UpgradeBenefits struct {
	ProductionBoost float64 `json:"production_boost"`
	EfficiencyBoost float64 `json:"efficiency_boost"`
	QualityBoost    float64 `json:"quality_boost"`
	CostReduction   float64 `json:"cost_reduction"`
}

// Upgrade is one catalog entry. An entry moves from Available to Purchased
// exactly once, never back.
type Upgrade struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Cost        float64         `json:"cost"`
	Benefits    UpgradeBenefits `json:"benefits"`
}

// Upgrades is the upgrade catalog.
type Upgrades struct {
	Purchased     []*Upgrade      `json:"purchased"`
	Available     []*Upgrade      `json:"available"`
	TotalBenefits UpgradeBenefits `json:"total_benefits"`
}

// ResearchProject is one research entry. Progress runs 0–100 while the
// project is current; a completed project never re-progresses.
type ResearchProject struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	Cost         float64 `json:"cost"`
	DailyCost    float64 `json:"daily_cost"`
	DurationDays float64 `json:"duration_days"`
	Progress     float64 `json:"progress"`
}

// TechnologyBenefits are permanent bonuses from completed research.
type TechnologyBenefits struct {
	QualityBonus    float64 `json:"quality_bonus"`
	EfficiencyBonus float64 `json:"efficiency_bonus"`
	CostReduction   float64 `json:"cost_reduction"`
	MarketingBonus  float64 `json:"marketing_bonus"`
}

// Research is the R&D state.
type Research struct {
	MonthlyBudget float64            `json:"monthly_budget"`
	Current       []*ResearchProject `json:"current"`
	Completed     []*ResearchProject `json:"completed"`
	Available     []*ResearchProject `json:"available"`
	Benefits      TechnologyBenefits `json:"benefits"`
}

// Position is one job title within a department.
type Position struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Wage  float64 `json:"wage"`
}

// Department is one staffing group.
type Department struct {
	Workers     int         `json:"workers"`
	AverageWage float64     `json:"average_wage"`
	SkillLevel  float64     `json:"skill_level"`
	Efficiency  float64     `json:"efficiency"` // clamped to [floor,100]
	Morale      float64     `json:"morale"`
	Positions   []*Position `json:"positions"`
}

// Candidate is one hireable person in the pool.
type Candidate struct {
	Name       string  `json:"name"`
	Department string  `json:"department"`
	Position   string  `json:"position"`
	Wage       float64 `json:"wage"` // hourly
	Skill      float64 `json:"skill"`
	HiringCost float64 `json:"hiring_cost"`
}

// TrainingProgram is one purchasable staff training.
type TrainingProgram struct {
	Name            string  `json:"name"`
	Cost            float64 `json:"cost"`
	DurationDays    float64 `json:"duration_days"`
	Requirement     string  `json:"requirement"`
	MoraleBoost     float64 `json:"morale_boost"`
	EfficiencyBoost float64 `json:"efficiency_boost"`
	QualityBoost    float64 `json:"quality_boost"`
}

// Employees is the workforce aggregate.
type Employees struct {
	Total         int                    `json:"total"`
	TotalWageCost float64                `json:"total_wage_cost"` // monthly
	Satisfaction  float64                `json:"satisfaction"`    // 0–100
	TurnoverRate  float64                `json:"turnover_rate"`
	Departments   map[string]*Department `json:"departments"`
	Hiring        []*Candidate           `json:"hiring"`
	Training      []*TrainingProgram     `json:"training"`
}

// Loan is one active debt.
type Loan struct {
	Name             string  `json:"name"`
	RemainingBalance float64 `json:"remaining_balance"`
	MonthlyPayment   float64 `json:"monthly_payment"`
	InterestRate     float64 `json:"interest_rate"`
	RemainingMonths  int     `json:"remaining_months"`
	TermMonths       int     `json:"term_months"`
}

// LoanOffer is one loan product the factory may apply for.
type LoanOffer struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	MaxAmount    float64 `json:"max_amount"`
	InterestRate float64 `json:"interest_rate"`
	TermMonths   int     `json:"term_months"`
}

// Loans is the debt position.
type Loans struct {
	TotalDebt       float64      `json:"total_debt"`
	MonthlyPayments float64      `json:"monthly_payments"`
	CreditScore     int          `json:"credit_score"`
	Active          []*Loan      `json:"active"`
	Available       []*LoanOffer `json:"available"`
}

// Challenge is one active goal with progress toward a target.
type Challenge struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Progress    float64 `json:"progress"`
	Target      float64 `json:"target"`
	Active      bool    `json:"active"`
}

// Progress tracks game-level bookkeeping. DaysPassed is the only field
// derived from wall-clock time; SimHours accumulates tick deltas.
type Progress struct {
	DaysPassed     float64         `json:"days_passed"`
	SimHours       float64         `json:"sim_hours"`
	DecisionsToday int             `json:"decisions_today"`
	TotalDecisions int             `json:"total_decisions"`
	StartTime      time.Time       `json:"start_time"`
	LastSave       time.Time       `json:"last_save"`
	Milestones     map[string]bool `json:"milestones"`
	Challenges     []*Challenge    `json:"challenges"`

	// Day-boundary bookkeeping for the cash-flow challenge.
	LastDayProcessed int     `json:"last_day_processed"`
	CashAtDayMark    float64 `json:"cash_at_day_mark"`
}

// Milestone keys.
const (
	MilestoneFirstProfit        = "first_profit"
	MilestoneFirstUpgrade       = "first_upgrade"
	MilestoneQualityImprovement = "quality_improvement"
	MilestoneMarketExpansion    = "market_expansion"
	MilestoneDebtFree           = "debt_free"
)

// EffectKind names a deferred mutation.
type EffectKind string

const (
	EffectDelivery EffectKind = "delivery"
	EffectTraining EffectKind = "training"
)

// Effect is a scheduled future mutation: committed when its command was
// accepted, applied once when SimHours reaches FireAtHours. An effect whose
// target no longer exists is dropped silently.
type Effect struct {
	ID         string       `json:"id"`
	Kind       EffectKind   `json:"kind"`
	FireAtHour float64      `json:"fire_at_hour"` // in SimHours
	Resource   ResourceType `json:"resource,omitempty"`
	Amount     float64      `json:"amount,omitempty"`
	Program    string       `json:"program,omitempty"`
}

// World is the complete mutable aggregate. Exactly one logical actor owns
// it at a time; all mutation goes through the tick engine or the command
// processor.
type World struct {
	Production Production                 `json:"production"`
	Resources  map[ResourceType]*Resource `json:"resources"`
	Market     Market                     `json:"market"`
	Finance    Finance                    `json:"finance"`
	ProfitLoss ProfitLoss                 `json:"profit_loss"`
	Quality    Quality                    `json:"quality"`
	Upgrades   Upgrades                   `json:"upgrades"`
	Research   Research                   `json:"research"`
	Employees  Employees                  `json:"employees"`
	Loans      Loans                      `json:"loans"`
	Progress   Progress                   `json:"progress"`
	Effects    []*Effect                  `json:"effects"`
}
