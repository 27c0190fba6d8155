package web

import (
	"fmt"

	"github.com/rohanthewiz/element"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"

	"precisionturn/db"
	"precisionturn/plan"
)

// DashboardHandler serves the turnaround dashboard using the element package
func DashboardHandler(c rweb.Context) error {
	database, err := db.GetDB()
	if err != nil {
		return c.WriteError(serr.Wrap(err, "failed to get database"), 500)
	}

	plans, err := database.ListPlans()
	if err != nil {
		return c.WriteError(serr.Wrap(err, "failed to list plans"), 500)
	}

	return c.WriteHTML(generateDashboard(plans))
}

func generateDashboard(plans []*plan.Plan) string {
	b := element.NewBuilder()

	b.Html().R(
		b.Head().R(
			b.Title().T("PrecisionTurn - Turnaround Navigator"),
			b.Meta("charset", "UTF-8"),
			b.Meta("name", "viewport", "content", "width=device-width, initial-scale=1.0"),
			b.Style().T(dashboardCSS()),
			b.Script().T(dashboardJS()),
		),
		b.Body().R(
			b.Div("id", "app").R(
				b.Header().R(
					b.Div("class", "header-content").R(
						b.H1().T("PrecisionTurn"),
						b.Span("class", "subtitle").T("Turnaround Navigator"),
					),
				),
				b.Main().R(
					b.Section("class", "plans-section").R(
						b.H2().T("Turnaround Plans"),
						planTable(b, plans),
					),
					b.Section("class", "chat-section").R(
						b.H2().T("Ask the Navigator"),
						b.Div("id", "chat-log").R(),
						b.Div("class", "chat-input").R(
							b.Input("id", "question", "type", "text",
								"placeholder", "e.g. What is the spend trend?"),
							b.Button("id", "ask-btn", "onclick", "askNavigator()").T("Ask"),
						),
					),
				),
			),
		),
	)

	return b.String()
}

func planTable(b *element.Builder, plans []*plan.Plan) (x any) {
	if len(plans) == 0 {
		b.P("class", "empty").T("No plans yet. Generate one via POST /api/plans/generate.")
		return
	}

	b.Div("class", "plan-list").R(
		b.Div("class", "plan-row plan-head").R(
			b.Span().T("Title"),
			b.Span().T("Status"),
			b.Span().T("Plant Type"),
			b.Span().T("Duration"),
			b.Span().T("Budget"),
			b.Span().T("Updated"),
		),
		element.ForEach(plans, func(p *plan.Plan) {
			b.Div("class", "plan-row").R(
				b.Span("class", "plan-title").T(p.Title),
				b.Span().R(
					b.Span("class", "badge badge-"+string(p.Status)).T(statusLabel(p.Status)),
				),
				b.Span().T(p.Details.PlantType),
				b.Span().T(fmt.Sprintf("%d days", p.Details.Duration)),
				b.Span().T(fmt.Sprintf("$%.0f", p.Details.Budget)),
				b.Span("class", "plan-updated").T(p.UpdatedAt),
			)
		}),
	)
	return
}

func statusLabel(s plan.Status) string {
	switch s {
	case plan.StatusDraft:
		return "Draft"
	case plan.StatusApproved:
		return "Approved"
	case plan.StatusInProgress:
		return "In Progress"
	case plan.StatusCompleted:
		return "Completed"
	}
	return string(s)
}

func dashboardCSS() string {
	return `
		* { box-sizing: border-box; margin: 0; padding: 0; }
		body { font-family: -apple-system, 'Segoe UI', sans-serif; background: #0f1419; color: #e6e6e6; }
		header { padding: 1rem 2rem; background: #1a2027; border-bottom: 1px solid #2d3640; }
		.header-content { display: flex; align-items: baseline; gap: 1rem; }
		.subtitle { color: #8899a6; font-size: 0.9rem; }
		main { padding: 2rem; display: grid; gap: 2rem; }
		h2 { margin-bottom: 1rem; font-size: 1.1rem; color: #c9d4de; }
		.plan-row { display: grid; grid-template-columns: 2fr 1fr 1fr 1fr 1fr 1.5fr; gap: 0.75rem; padding: 0.5rem 0.75rem; border-bottom: 1px solid #2d3640; }
		.plan-head span { color: #8899a6; font-weight: 500; }
		.plan-updated { color: #8899a6; font-size: 0.85rem; }
		.badge { padding: 0.15rem 0.5rem; border-radius: 4px; font-size: 0.8rem; }
		.badge-draft { background: #3a4450; }
		.badge-approved { background: #1d4d36; }
		.badge-in_progress { background: #4d3d1d; }
		.badge-completed { background: #1d3a4d; }
		.empty { color: #8899a6; }
		#chat-log { min-height: 4rem; margin-bottom: 0.75rem; }
		#chat-log .entry { margin-bottom: 0.5rem; }
		#chat-log .who { color: #8899a6; margin-right: 0.5rem; }
		.chat-input { display: flex; gap: 0.5rem; }
		.chat-input input { flex: 1; padding: 0.5rem; background: #1a2027; color: #e6e6e6; border: 1px solid #2d3640; border-radius: 4px; }
		.chat-input button { padding: 0.5rem 1.25rem; background: #2563eb; color: white; border: none; border-radius: 4px; cursor: pointer; }
	`
}

func dashboardJS() string {
	return `
		async function askNavigator() {
			const input = document.getElementById('question');
			const log = document.getElementById('chat-log');
			const question = input.value.trim();
			if (!question) return;

			log.innerHTML += '<div class="entry"><span class="who">You</span>' + question + '</div>';
			input.value = '';

			try {
				const resp = await fetch('/api/rag/query', {
					method: 'POST',
					headers: { 'Content-Type': 'application/json' },
					body: JSON.stringify({ question })
				});
				const data = await resp.json();
				const answer = data.answer || data.error || 'No answer available.';
				log.innerHTML += '<div class="entry"><span class="who">Navigator</span>' + answer + '</div>';
			} catch (e) {
				log.innerHTML += '<div class="entry"><span class="who">Navigator</span>Request failed.</div>';
			}
		}
	`
}
