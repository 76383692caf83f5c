package main

import (
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bobinette/knowledgehub"
	"github.com/bobinette/knowledgehub/views"
)

var (
	aiFile     string
	aiMode     string
	aiTitle    string
	aiCategory string
)

func init() {
	AICommand.PersistentFlags().StringVar(&aiFile, "file", "", "read the text from a file")

	AIImproveCommand.Flags().StringVar(&aiMode, "mode", knowledgehub.DefaultImproveMode, "how to improve the text")
	AISummaryCommand.Flags().StringVar(&aiTitle, "title", "", "title of the text")
	AITagsCommand.Flags().StringVar(&aiCategory, "category", string(knowledgehub.CategoryTech), "category of the text")

	AICommand.AddCommand(&AIImproveCommand)
	AICommand.AddCommand(&AITitleCommand)
	AICommand.AddCommand(&AISummaryCommand)
	AICommand.AddCommand(&AITagsCommand)
	RootCmd.AddCommand(&AICommand)
}

// assistForm returns a form holding the text given as args or in --file.
func assistForm(args []string) (*views.CreateForm, error) {
	text := strings.Join(args, " ")
	if aiFile != "" {
		data, err := ioutil.ReadFile(aiFile)
		if err != nil {
			return nil, err
		}
		text = string(data)
	}

	form := views.NewCreateForm(app.Articles, app.Assistant, app.Notifier, app.Navigator, app.Logger)
	form.SetContent(text)
	return form, nil
}

func printResult(key, value string) error {
	if app.Structured() {
		return app.Encode(map[string]string{key: value})
	}
	fmt.Fprintln(app.out, value)
	return nil
}

var AICommand = cobra.Command{
	Use:   "ai",
	Short: "Writing help",
	Long:  "Ask the AI to improve a text, or to title, summarize or tag it",
}

var AIImproveCommand = cobra.Command{
	Use:   "improve [text]",
	Short: "Improve a text",
	Long:  "Rewrite a text in the given mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		form, err := assistForm(args)
		if err != nil {
			return err
		}
		if err := form.ImproveContent(cmd.Context(), aiMode); err != nil {
			return reported(err)
		}
		return printResult("content", form.Draft().Content)
	},
}

var AITitleCommand = cobra.Command{
	Use:   "title [text]",
	Short: "Suggest a title",
	Long:  "Suggest a title for a text",
	RunE: func(cmd *cobra.Command, args []string) error {
		form, err := assistForm(args)
		if err != nil {
			return err
		}
		if err := form.SuggestTitle(cmd.Context()); err != nil {
			return reported(err)
		}
		return printResult("title", form.Draft().Title)
	},
}

var AISummaryCommand = cobra.Command{
	Use:   "summary [text]",
	Short: "Summarize a text",
	Long:  "Write a short summary of a text",
	RunE: func(cmd *cobra.Command, args []string) error {
		form, err := assistForm(args)
		if err != nil {
			return err
		}
		form.SetTitle(aiTitle)
		if err := form.GenerateSummary(cmd.Context()); err != nil {
			return reported(err)
		}
		return printResult("summary", form.Draft().Summary)
	},
}

var AITagsCommand = cobra.Command{
	Use:   "tags [text]",
	Short: "Suggest tags",
	Long:  "Suggest tags for a text of the given category",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, err := knowledgehub.ParseCategory(aiCategory, false)
		if err != nil {
			return err
		}

		form, err := assistForm(args)
		if err != nil {
			return err
		}
		form.SetCategory(category)
		tags, err := form.SuggestTags(cmd.Context())
		if err != nil {
			return reported(err)
		}

		if app.Structured() {
			return app.Encode(map[string][]string{"tags": tags})
		}
		fmt.Fprintln(app.out, knowledgehub.JoinTags(tags))
		return nil
	},
}
