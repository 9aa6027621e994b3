package service

import "photoset/api/internal/model"

// Plan is one tier of the fixed subscription catalog. The catalog is static
// configuration, not user-editable.
type Plan struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Price   string `json:"price"`
	Credits int    `json:"credits"`
}

var planCatalog = map[string]Plan{
	model.PlanStarter:  {ID: model.PlanStarter, Name: "Starter", Price: "5.00", Credits: 50},
	model.PlanStandard: {ID: model.PlanStandard, Name: "Standard", Price: "10.00", Credits: 100},
	model.PlanPremium:  {ID: model.PlanPremium, Name: "Premium", Price: "15.00", Credits: 200},
}

// PlanByID looks up a tier in the catalog.
func PlanByID(id string) (Plan, bool) {
	plan, ok := planCatalog[id]
	return plan, ok
}

// Plans returns the catalog in display order.
func Plans() []Plan {
	return []Plan{
		planCatalog[model.PlanStarter],
		planCatalog[model.PlanStandard],
		planCatalog[model.PlanPremium],
	}
}
