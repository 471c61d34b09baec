// Command processor — discrete player actions, each an atomic transaction
// over the whole world state. A rejected command has no effect at all: no
// partial debit, no decision counted. The returned error carries the
// rejection reason; the simulation itself is never in an error state.
package engine

import (
	"fmt"

	"github.com/clearspring/bottleworks/internal/state"
)

// countDecision bumps the decision counters, exactly once per applied
// command.
func countDecision(w *state.World) {
	w.Progress.DecisionsToday++
	w.Progress.TotalDecisions++
}

// OrderSupplies debits cash for a quantity of a raw material and schedules
// its delivery. The in-flight quantity sits in Ordered until the delivery
// effect fires; arrival is capped at capacity.
func (s *Simulation) OrderSupplies(rt state.ResourceType, quantity float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.world

	res, ok := w.Resources[rt]
	if !ok {
		return fmt.Errorf("unknown resource %q", rt)
	}
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	cost := quantity * res.Cost
	if w.Finance.Cash < cost {
		return fmt.Errorf("insufficient funds: need %.2f, have %.2f", cost, w.Finance.Cash)
	}

	w.Finance.Cash -= cost
	res.Ordered += quantity
	s.scheduleEffect(w, state.Effect{
		Kind:       state.EffectDelivery,
		FireAtHour: w.Progress.SimHours + s.cfg.DeliveryDelayHours,
		Resource:   rt,
		Amount:     quantity,
	})
	countDecision(w)
	s.emit("command", "Ordered %.0f %s of %s for %.2f", quantity, res.Unit, res.Name, cost)
	return nil
}

// Hire moves a candidate from the pool into their department, debiting the
// hiring cost and raising headcount and wage obligations atomically.
func (s *Simulation) Hire(candidateIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.world

	if candidateIndex < 0 || candidateIndex >= len(w.Employees.Hiring) {
		return fmt.Errorf("no candidate at index %d", candidateIndex)
	}
	c := w.Employees.Hiring[candidateIndex]
	dept, ok := w.Employees.Departments[c.Department]
	if !ok {
		return fmt.Errorf("unknown department %q", c.Department)
	}
	if w.Finance.Cash < c.HiringCost {
		return fmt.Errorf("insufficient funds: need %.2f, have %.2f", c.HiringCost, w.Finance.Cash)
	}

	w.Finance.Cash -= c.HiringCost
	w.Employees.Hiring = append(w.Employees.Hiring[:candidateIndex], w.Employees.Hiring[candidateIndex+1:]...)

	prevWorkers := dept.Workers
	dept.Workers++
	w.Employees.Total++
	dept.AverageWage = (dept.AverageWage*float64(prevWorkers) + c.Wage) / float64(dept.Workers)

	found := false
	for _, pos := range dept.Positions {
		if pos.Name == c.Position {
			pos.Count++
			found = true
			break
		}
	}
	if !found {
		dept.Positions = append(dept.Positions, &state.Position{Name: c.Position, Count: 1, Wage: c.Wage})
	}

	w.Employees.TotalWageCost += c.Wage * s.cfg.WageHoursPerMonth
	countDecision(w)
	s.emit("command", "Hired %s as %s in %s", c.Name, c.Position, c.Department)
	return nil
}

// AdjustPrice moves a product's price by delta, clamped to a positive
// minimum. No cash effect.
func (s *Simulation) AdjustPrice(productType string, delta float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.world

	var product *state.Product
	for _, p := range w.Market.Products {
		if p.Type == productType {
			product = p
			break
		}
	}
	if product == nil {
		return fmt.Errorf("unknown product type %q", productType)
	}

	product.Price += delta
	if product.Price < s.cfg.MinProductPrice {
		product.Price = s.cfg.MinProductPrice
	}

	total := 0.0
	for _, p := range w.Market.Products {
		total += p.Price
	}
	w.Market.AveragePrice = total / float64(len(w.Market.Products))

	countDecision(w)
	s.emit("command", "Price of %s set to %.2f", product.Name, product.Price)
	return nil
}

// PurchaseUpgrade debits cash, moves the catalog entry from available to
// purchased, and merges its benefit deltas additively into the cumulative
// totals. An entry moves exactly once, never back.
func (s *Simulation) PurchaseUpgrade(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.world

	idx := -1
	for i, u := range w.Upgrades.Available {
		if u.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("upgrade %q not available", id)
	}
	u := w.Upgrades.Available[idx]
	if w.Finance.Cash < u.Cost {
		return fmt.Errorf("insufficient funds: need %.2f, have %.2f", u.Cost, w.Finance.Cash)
	}

	w.Finance.Cash -= u.Cost
	w.Upgrades.Available = append(w.Upgrades.Available[:idx], w.Upgrades.Available[idx+1:]...)
	w.Upgrades.Purchased = append(w.Upgrades.Purchased, u)

	tb := &w.Upgrades.TotalBenefits
	tb.ProductionBoost += u.Benefits.ProductionBoost
	tb.EfficiencyBoost += u.Benefits.EfficiencyBoost
	tb.QualityBoost += u.Benefits.QualityBoost
	tb.CostReduction += u.Benefits.CostReduction

	countDecision(w)
	s.emit("command", "Purchased upgrade: %s", u.Name)
	return nil
}

// StartResearch debits the project cost and moves the entry from available
// into the current list at progress zero. Completion is the tick engine's
// job.
func (s *Simulation) StartResearch(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.world

	idx := -1
	for i, p := range w.Research.Available {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("research project %q not available", id)
	}
	p := w.Research.Available[idx]
	if w.Finance.Cash < p.Cost {
		return fmt.Errorf("insufficient funds: need %.2f, have %.2f", p.Cost, w.Finance.Cash)
	}

	w.Finance.Cash -= p.Cost
	w.Research.Available = append(w.Research.Available[:idx], w.Research.Available[idx+1:]...)
	p.Progress = 0
	w.Research.Current = append(w.Research.Current, p)

	countDecision(w)
	s.emit("command", "Research started: %s (%.0f days)", p.Name, p.DurationDays)
	return nil
}

// ApplyLoan takes out a loan against one of the available offers, bounded
// by the offer's maximum. Cash rises now; the payment obligation accrues
// every tick until the balance amortizes away.
func (s *Simulation) ApplyLoan(offerID string, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.world

	var offer *state.LoanOffer
	for _, o := range w.Loans.Available {
		if o.ID == offerID {
			offer = o
			break
		}
	}
	if offer == nil {
		return fmt.Errorf("unknown loan offer %q", offerID)
	}
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	if amount > offer.MaxAmount {
		amount = offer.MaxAmount
	}

	// Flat-rate amortization: principal plus simple interest over the term.
	months := float64(offer.TermMonths)
	totalOwed := amount * (1 + offer.InterestRate/100*months/12)
	payment := totalOwed / months

	w.Finance.Cash += amount
	w.Loans.Active = append(w.Loans.Active, &state.Loan{
		Name:             offer.Name,
		RemainingBalance: totalOwed,
		MonthlyPayment:   payment,
		InterestRate:     offer.InterestRate,
		RemainingMonths:  offer.TermMonths,
		TermMonths:       offer.TermMonths,
	})
	w.Loans.TotalDebt += totalOwed
	w.Loans.MonthlyPayments += payment
	w.Finance.MonthlyLoanPayment = w.Loans.MonthlyPayments

	countDecision(w)
	s.emit("command", "Loan approved: %s for %.0f (%.2f/month)", offer.Name, amount, payment)
	return nil
}

// ToggleLine flips a production line's active flag. A broken-down line
// cannot be re-activated, and nothing starts while a critical resource is
// exhausted.
func (s *Simulation) ToggleLine(lineID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.world

	line := findLine(w, lineID)
	if line == nil {
		return fmt.Errorf("no production line %d", lineID)
	}
	if !line.Active {
		if line.Status == state.MaintenanceCritical {
			return fmt.Errorf("%s is broken down: repair it first", line.Name)
		}
		for _, rt := range state.CriticalResources {
			if w.Resources[rt].Current <= 0 {
				return fmt.Errorf("cannot start %s: %s exhausted", line.Name, w.Resources[rt].Name)
			}
		}
	}

	line.Active = !line.Active
	countDecision(w)
	if line.Active {
		s.emit("command", "%s started", line.Name)
	} else {
		s.emit("command", "%s stopped", line.Name)
	}
	return nil
}

// SetLineSpeed sets a line's speed dial, clamped to [1,10].
func (s *Simulation) SetLineSpeed(lineID int, speed float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.world

	line := findLine(w, lineID)
	if line == nil {
		return fmt.Errorf("no production line %d", lineID)
	}

	line.Speed = clampf(speed, 1, 10)
	countDecision(w)
	s.emit("command", "%s speed set to %.0f", line.Name, line.Speed)
	return nil
}

// RepairLine pays to clear a line's maintenance state: status returns to
// good, the countdown resets, and breakdown efficiency loss is restored.
// Cost scales with how much efficiency the repair restores.
func (s *Simulation) RepairLine(lineID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.world

	line := findLine(w, lineID)
	if line == nil {
		return fmt.Errorf("no production line %d", lineID)
	}
	if line.Status == state.MaintenanceGood {
		return fmt.Errorf("%s does not need repair", line.Name)
	}

	restored := clampf(line.Efficiency+s.cfg.BreakdownPenalty, 0, 100) - line.Efficiency
	cost := (restored + 5) * s.cfg.RepairCostPerPoint
	if w.Finance.Cash < cost {
		return fmt.Errorf("insufficient funds: need %.2f, have %.2f", cost, w.Finance.Cash)
	}

	w.Finance.Cash -= cost
	line.Status = state.MaintenanceGood
	line.NextMaintenance = s.cfg.MaintenanceIntervalHrs
	line.Efficiency += restored

	countDecision(w)
	s.emit("command", "%s repaired for %.0f: efficiency back to %.0f%%", line.Name, cost, line.Efficiency)
	return nil
}

// StartTraining debits the program cost now and applies its benefits after
// the program duration, as a deferred effect.
func (s *Simulation) StartTraining(programName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.world

	var program *state.TrainingProgram
	for _, p := range w.Employees.Training {
		if p.Name == programName {
			program = p
			break
		}
	}
	if program == nil {
		return fmt.Errorf("unknown training program %q", programName)
	}
	if w.Finance.Cash < program.Cost {
		return fmt.Errorf("insufficient funds: need %.2f, have %.2f", program.Cost, w.Finance.Cash)
	}

	w.Finance.Cash -= program.Cost
	s.scheduleEffect(w, state.Effect{
		Kind:       state.EffectTraining,
		FireAtHour: w.Progress.SimHours + program.DurationDays*24,
		Program:    program.Name,
	})
	countDecision(w)
	s.emit("command", "Training started: %s (%.0f days)", program.Name, program.DurationDays)
	return nil
}

// ImproveQuality pays for one of the quality improvement actions, bumping
// the overall score immediately.
func (s *Simulation) ImproveQuality(actionTitle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.world

	var action *state.QualityAction
	for _, a := range w.Quality.Actions {
		if a.Title == actionTitle {
			action = a
			break
		}
	}
	if action == nil {
		return fmt.Errorf("unknown quality action %q", actionTitle)
	}
	if w.Finance.Cash < action.Cost {
		return fmt.Errorf("insufficient funds: need %.2f, have %.2f", action.Cost, w.Finance.Cash)
	}

	w.Finance.Cash -= action.Cost
	w.Quality.OverallScore = clampf(w.Quality.OverallScore+action.Impact, s.cfg.QualityFloor, 100)
	w.Quality.Contamination = clampf(w.Quality.Contamination-action.Impact*0.05, 0, 100)

	countDecision(w)
	s.emit("command", "Quality action: %s (+%.0f)", action.Title, action.Impact)
	return nil
}

func findLine(w *state.World, id int) *state.ProductionLine {
	for _, line := range w.Production.Lines {
		if line.ID == id {
			return line
		}
	}
	return nil
}
