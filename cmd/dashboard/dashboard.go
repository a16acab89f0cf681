package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

const (
	tabDatasets      = "datasets"
	tabModels        = "models"
	tabRelationships = "relationships"
)

// DashboardView shows aggregate counts and per-entity tables. All entity
// data is derived from the API; the only owned state is the active tab.
type DashboardView struct {
	app.Compo

	datasets      []Dataset
	models        []Model
	relationships []Relationship
	loaded        bool
	loadError     string

	activeTab string
}

func (d *DashboardView) OnInit() {
	d.activeTab = tabDatasets
}

func (d *DashboardView) OnMount(ctx app.Context) {
	d.loadData(ctx)
}

func (d *DashboardView) loadData(ctx app.Context) {
	ctx.Async(func() {
		var (
			datasets      []Dataset
			models        []Model
			relationships []Relationship
		)

		if err := fetchJSON("/api/datasets", &datasets); err != nil {
			d.failLoad(ctx, err)
			return
		}
		if err := fetchJSON("/api/models", &models); err != nil {
			d.failLoad(ctx, err)
			return
		}
		if err := fetchJSON("/api/relationships", &relationships); err != nil {
			d.failLoad(ctx, err)
			return
		}

		ctx.Dispatch(func(ctx app.Context) {
			d.datasets = datasets
			d.models = models
			d.relationships = relationships
			d.loaded = true
			d.loadError = ""
		})
	})
}

func (d *DashboardView) failLoad(ctx app.Context, err error) {
	app.Log("error loading dashboard data:", err)
	ctx.Dispatch(func(ctx app.Context) {
		d.loaded = true
		d.loadError = err.Error()
	})
}

func fetchJSON(url string, out interface{}) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (d *DashboardView) setTab(tab string) app.EventHandler {
	return func(ctx app.Context, e app.Event) {
		d.activeTab = tab
	}
}

func (d *DashboardView) Render() app.UI {
	if !d.loaded {
		return app.Div().Class("dashboard").Body(
			app.P().Text("Loading..."),
		)
	}
	if d.loadError != "" {
		return app.Div().Class("dashboard").Body(
			app.P().Class("error").Text("Failed to load data: "+d.loadError),
		)
	}

	return app.Div().Class("dashboard").Body(
		app.H1().Text("DataTrail"),
		d.renderCounts(),
		d.renderTabs(),
		d.renderActiveTable(),
	)
}

func (d *DashboardView) renderCounts() app.UI {
	return app.Div().Class("counts").Body(
		app.Div().Class("count-card").Body(
			app.H2().Text(fmt.Sprintf("%d", len(d.datasets))),
			app.P().Text("Datasets"),
		),
		app.Div().Class("count-card").Body(
			app.H2().Text(fmt.Sprintf("%d", len(d.models))),
			app.P().Text("Models"),
		),
		app.Div().Class("count-card").Body(
			app.H2().Text(fmt.Sprintf("%d", len(d.relationships))),
			app.P().Text("Relationships"),
		),
	)
}

func (d *DashboardView) renderTabs() app.UI {
	tab := func(id, label string) app.UI {
		class := "tab"
		if d.activeTab == id {
			class = "tab active"
		}
		return app.Button().Class(class).Text(label).OnClick(d.setTab(id))
	}

	return app.Div().Class("tabs").Body(
		tab(tabDatasets, "Datasets"),
		tab(tabModels, "Models"),
		tab(tabRelationships, "Relationships"),
	)
}

func (d *DashboardView) renderActiveTable() app.UI {
	switch d.activeTab {
	case tabModels:
		return d.renderModels()
	case tabRelationships:
		return d.renderRelationships()
	default:
		return d.renderDatasets()
	}
}

func (d *DashboardView) renderDatasets() app.UI {
	return app.Table().Body(
		app.THead().Body(
			app.Tr().Body(
				app.Th().Text("ID"),
				app.Th().Text("Name"),
				app.Th().Text("Size"),
				app.Th().Text("Status"),
				app.Th().Text("CID"),
				app.Th().Text("Uploaded"),
			),
		),
		app.TBody().Body(
			app.Range(d.datasets).Slice(func(i int) app.UI {
				ds := d.datasets[i]
				return app.Tr().Body(
					app.Td().Text(fmt.Sprintf("%d", ds.ID)),
					app.Td().Text(ds.Name),
					app.Td().Text(ds.Size),
					app.Td().Text(ds.Status),
					app.Td().Text(ds.ContentID),
					app.Td().Text(ds.UploadedAt),
				)
			}),
		),
	)
}

func (d *DashboardView) renderModels() app.UI {
	return app.Table().Body(
		app.THead().Body(
			app.Tr().Body(
				app.Th().Text("ID"),
				app.Th().Text("Name"),
				app.Th().Text("CID"),
				app.Th().Text("Created"),
			),
		),
		app.TBody().Body(
			app.Range(d.models).Slice(func(i int) app.UI {
				m := d.models[i]
				return app.Tr().Body(
					app.Td().Text(fmt.Sprintf("%d", m.ID)),
					app.Td().Text(m.Name),
					app.Td().Text(m.ContentID),
					app.Td().Text(m.CreatedAt),
				)
			}),
		),
	)
}

func (d *DashboardView) renderRelationships() app.UI {
	return app.Table().Body(
		app.THead().Body(
			app.Tr().Body(
				app.Th().Text("ID"),
				app.Th().Text("Dataset"),
				app.Th().Text("Model"),
				app.Th().Text("Status"),
				app.Th().Text("Usage date"),
			),
		),
		app.TBody().Body(
			app.Range(d.relationships).Slice(func(i int) app.UI {
				r := d.relationships[i]
				return app.Tr().Body(
					app.Td().Text(fmt.Sprintf("%d", r.ID)),
					app.Td().Text(fmt.Sprintf("%d", r.DatasetID)),
					app.Td().Text(fmt.Sprintf("%d", r.ModelID)),
					app.Td().Text(r.Status),
					app.Td().Text(r.UsageDate),
				)
			}),
		),
	)
}
