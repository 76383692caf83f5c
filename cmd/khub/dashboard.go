package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/bobinette/knowledgehub"
	"github.com/bobinette/knowledgehub/views"
)

var dashboardStatus string

func init() {
	DashboardCommand.PersistentFlags().StringVar(&dashboardStatus, "status", string(views.StatusAll), "ALL, PUBLISHED or DRAFT")

	DashboardCommand.AddCommand(&DashboardDeleteCommand)
	RootCmd.AddCommand(&DashboardCommand)
}

type dashboardOutput struct {
	Stats    views.DashboardStats   `json:"stats" yaml:"stats"`
	Filter   knowledgehub.Status    `json:"filter" yaml:"filter"`
	Articles []knowledgehub.Article `json:"articles" yaml:"articles"`
}

var DashboardCommand = cobra.Command{
	Use:   "dashboard",
	Short: "List your articles",
	Long:  "List your articles, published and drafts, with their counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dashboard, err := loadDashboard(cmd)
		if err != nil {
			return err
		}
		return showDashboard(dashboard)
	},
}

var DashboardDeleteCommand = cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one of your articles and show the dashboard",
	Long:  "Delete one of your articles and show what is left",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		dashboard, err := loadDashboard(cmd)
		if err != nil {
			return err
		}
		if err := dashboard.Delete(cmd.Context(), id); err != nil {
			return reported(err)
		}
		return showDashboard(dashboard)
	},
}

func loadDashboard(cmd *cobra.Command) (*views.Dashboard, error) {
	if err := requireSession(views.RouteDashboard.Pattern); err != nil {
		return nil, err
	}

	dashboard := views.NewDashboard(app.Articles, app.Notifier)
	if err := dashboard.SetFilter(knowledgehub.Status(strings.ToUpper(strings.TrimSpace(dashboardStatus)))); err != nil {
		return nil, err
	}
	if err := dashboard.Load(cmd.Context()); err != nil {
		return nil, reported(err)
	}
	return dashboard, nil
}

func showDashboard(dashboard *views.Dashboard) error {
	if app.Structured() {
		return app.Encode(dashboardOutput{
			Stats:    dashboard.Stats(),
			Filter:   dashboard.Filter(),
			Articles: dashboard.Articles(),
		})
	}

	user, _ := app.Session.Current()
	app.Renderer.Dashboard(user, dashboard.Stats(), dashboard.Filter(), dashboard.Articles())
	return nil
}
