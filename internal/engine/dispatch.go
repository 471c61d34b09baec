package engine

import (
	"fmt"

	"github.com/clearspring/bottleworks/internal/state"
)

// Command names accepted by Apply.
const (
	CmdOrderSupplies   = "order_supplies"
	CmdHire            = "hire"
	CmdAdjustPrice     = "adjust_price"
	CmdPurchaseUpgrade = "purchase_upgrade"
	CmdStartResearch   = "start_research"
	CmdApplyLoan       = "apply_loan"
	CmdToggleLine      = "toggle_line"
	CmdSetLineSpeed    = "set_line_speed"
	CmdRepairLine      = "repair_line"
	CmdStartTraining   = "start_training"
	CmdImproveQuality  = "improve_quality"
)

// Apply resolves a named command with loosely-typed parameters, as they
// arrive from the HTTP shell. A returned error is the rejection reason;
// the world is untouched on rejection.
func (s *Simulation) Apply(name string, params map[string]any) error {
	switch name {
	case CmdOrderSupplies:
		rt, err := paramString(params, "resource")
		if err != nil {
			return err
		}
		qty, err := paramFloat(params, "quantity")
		if err != nil {
			return err
		}
		return s.OrderSupplies(state.ResourceType(rt), qty)

	case CmdHire:
		idx, err := paramInt(params, "candidate")
		if err != nil {
			return err
		}
		return s.Hire(idx)

	case CmdAdjustPrice:
		product, err := paramString(params, "product")
		if err != nil {
			return err
		}
		delta, err := paramFloat(params, "delta")
		if err != nil {
			return err
		}
		return s.AdjustPrice(product, delta)

	case CmdPurchaseUpgrade:
		id, err := paramString(params, "id")
		if err != nil {
			return err
		}
		return s.PurchaseUpgrade(id)

	case CmdStartResearch:
		id, err := paramString(params, "id")
		if err != nil {
			return err
		}
		return s.StartResearch(id)

	case CmdApplyLoan:
		id, err := paramString(params, "id")
		if err != nil {
			return err
		}
		amount, err := paramFloat(params, "amount")
		if err != nil {
			return err
		}
		return s.ApplyLoan(id, amount)

	case CmdToggleLine:
		id, err := paramInt(params, "line")
		if err != nil {
			return err
		}
		return s.ToggleLine(id)

	case CmdSetLineSpeed:
		id, err := paramInt(params, "line")
		if err != nil {
			return err
		}
		speed, err := paramFloat(params, "speed")
		if err != nil {
			return err
		}
		return s.SetLineSpeed(id, speed)

	case CmdRepairLine:
		id, err := paramInt(params, "line")
		if err != nil {
			return err
		}
		return s.RepairLine(id)

	case CmdStartTraining:
		program, err := paramString(params, "program")
		if err != nil {
			return err
		}
		return s.StartTraining(program)

	case CmdImproveQuality:
		title, err := paramString(params, "action")
		if err != nil {
			return err
		}
		return s.ImproveQuality(title)
	}

	return fmt.Errorf("unknown command %q", name)
}

func paramString(params map[string]any, key string) (string, error) {
	v, ok := params[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("missing parameter %q", key)
	}
	return v, nil
}

func paramFloat(params map[string]any, key string) (float64, error) {
	switch v := params[key].(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	}
	return 0, fmt.Errorf("missing parameter %q", key)
}

func paramInt(params map[string]any, key string) (int, error) {
	f, err := paramFloat(params, key)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
