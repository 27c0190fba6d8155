package handlers

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"

	"precisionturn/db"
	"precisionturn/plan"
	"precisionturn/planner"
)

func listPlansHandler(c rweb.Context) error {
	database, err := db.GetDB()
	if err != nil {
		return c.WriteError(serr.Wrap(err, "failed to get database"), 500)
	}

	plans, err := database.ListPlans()
	if err != nil {
		return c.WriteError(serr.Wrap(err, "failed to list plans"), 500)
	}

	return c.WriteJSON(plans)
}

func getPlanHandler(c rweb.Context) error {
	planID := c.Request().Param("id")

	database, err := db.GetDB()
	if err != nil {
		return c.WriteError(serr.Wrap(err, "failed to get database"), 500)
	}

	p, err := database.GetPlan(planID)
	if err != nil {
		return c.WriteError(serr.Wrap(err, "failed to get plan"), 500)
	}
	if p == nil {
		return c.WriteError(serr.New("Plan not found"), 404)
	}

	return c.WriteJSON(p)
}

func generatePlanHandler(c rweb.Context) error {
	var req plan.GenerateRequest
	if err := json.Unmarshal(c.Request().Body(), &req); err != nil {
		return c.WriteError(serr.Wrap(err, "invalid request body"), 400)
	}

	if missing := req.MissingFields(); len(missing) > 0 {
		return c.WriteError(serr.New("Missing required fields: "+strings.Join(missing, ", ")), 400)
	}

	database, err := db.GetDB()
	if err != nil {
		return c.WriteError(serr.Wrap(err, "failed to get database"), 500)
	}

	gen := planner.NewGenerator()
	details, err := gen.Generate(context.Background(), req)
	if err != nil {
		logger.LogErr(err, "plan generation failed", "title", req.Title)
		return c.WriteError(serr.Wrap(err, "Failed to generate plan"), 500)
	}

	p, err := database.CreatePlan(req.Title, plan.StatusDraft, details)
	if err != nil {
		return c.WriteError(serr.Wrap(err, "failed to save plan"), 500)
	}

	return c.WriteJSON(p)
}

func updatePlanHandler(c rweb.Context) error {
	planID := c.Request().Param("id")

	var updates plan.Updates
	if err := json.Unmarshal(c.Request().Body(), &updates); err != nil {
		return c.WriteError(serr.Wrap(err, "invalid request body"), 400)
	}

	database, err := db.GetDB()
	if err != nil {
		return c.WriteError(serr.Wrap(err, "failed to get database"), 500)
	}

	p, err := database.UpdatePlan(planID, updates)
	if err != nil {
		return c.WriteError(serr.Wrap(err, "failed to update plan"), 500)
	}
	if p == nil {
		return c.WriteError(serr.New("Plan not found"), 404)
	}

	return c.WriteJSON(p)
}

func deletePlanHandler(c rweb.Context) error {
	planID := c.Request().Param("id")

	database, err := db.GetDB()
	if err != nil {
		return c.WriteError(serr.Wrap(err, "failed to get database"), 500)
	}

	deleted, err := database.DeletePlan(planID)
	if err != nil {
		return c.WriteError(serr.Wrap(err, "failed to delete plan"), 500)
	}
	if !deleted {
		return c.WriteError(serr.New("Plan not found"), 404)
	}

	return c.WriteJSON(map[string]string{"message": "Plan deleted successfully"})
}
