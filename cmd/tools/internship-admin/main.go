// cmd/tools/internship-admin/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"internmatch-web/internal/admin"
	"internmatch-web/internal/common/config"
	commonhttp "internmatch-web/internal/common/http"
	"internmatch-web/internal/common/logger"
	"internmatch-web/internal/models"
	"internmatch-web/internal/recommender"
)

func main() {
	if len(os.Args) < 2 {
		help(os.Stderr)
		os.Exit(1)
	}

	// Reuse the web server's recommender settings when the config loads.
	baseURL := "http://localhost:5000"
	timeout := 10 * time.Second
	if cfg, err := config.Load(); err == nil {
		baseURL = cfg.Recommender.BaseURL
		timeout = config.GetDuration(cfg.Recommender.Timeout)
	} else if v := os.Getenv("INTERNMATCH_RECOMMENDER_BASE_URL"); v != "" {
		baseURL = v
	}

	api := recommender.NewClient(baseURL, commonhttp.NewClient(timeout), logger.NewNoOpLogger())

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := run(ctx, api, os.Stdout, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes one subcommand against api and writes its result to out.
func run(ctx context.Context, api recommender.API, out io.Writer, command string, args []string) error {
	switch command {
	case "list":
		listCmd := flag.NewFlagSet("list", flag.ContinueOnError)
		department := listCmd.String("department", admin.FilterAll, "Only show this department")
		if err := listCmd.Parse(args); err != nil {
			return err
		}
		list, err := api.ListInternships(ctx)
		if err != nil {
			return fmt.Errorf("failed to list internships: %w", err)
		}
		for _, in := range admin.Filter(list, *department) {
			fmt.Fprintf(out, "%s\t%s\t%s\t%s\t₹%d\t%d\n", in.ID, in.Title, in.Department, in.Location, in.Stipend, in.Capacity)
		}
		return nil

	case "show":
		showCmd := flag.NewFlagSet("show", flag.ContinueOnError)
		id := showCmd.String("id", "", "Internship ID")
		if err := showCmd.Parse(args); err != nil {
			return err
		}
		if *id == "" {
			return fmt.Errorf("id is required for show")
		}
		in, err := api.GetInternship(ctx, *id)
		if err != nil {
			return fmt.Errorf("failed to fetch internship %s: %w", *id, err)
		}
		return printJSON(out, in)

	case "add":
		addCmd := flag.NewFlagSet("add", flag.ContinueOnError)
		var draft admin.Draft
		addCmd.StringVar(&draft.Title, "title", "", "Title")
		addCmd.StringVar(&draft.Department, "department", "", "Department (IT, Finance, Healthcare, Education, Marketing, Operations)")
		addCmd.StringVar(&draft.Sector, "sector", "", "Sector (defaults to the department)")
		addCmd.StringVar(&draft.Location, "location", "", "Location")
		addCmd.StringVar(&draft.Stipend, "stipend", "0", "Monthly stipend in rupees")
		addCmd.StringVar(&draft.Capacity, "capacity", "1", "Number of positions")
		addCmd.StringVar(&draft.SkillsRequired, "skills", "", "Comma separated required skills")
		addCmd.StringVar(&draft.Description, "description", "", "Description")
		if err := addCmd.Parse(args); err != nil {
			return err
		}
		if draft.Title == "" {
			return fmt.Errorf("title is required for add")
		}
		res, err := api.AddInternship(ctx, draft.Build())
		if err != nil {
			return fmt.Errorf("failed to add internship: %w", err)
		}
		fmt.Fprintf(out, "Added internship: %s\n", describe(res))
		return nil

	case "delete":
		deleteCmd := flag.NewFlagSet("delete", flag.ContinueOnError)
		id := deleteCmd.String("id", "", "Internship ID")
		if err := deleteCmd.Parse(args); err != nil {
			return err
		}
		if *id == "" {
			return fmt.Errorf("id is required for delete")
		}
		res, err := api.DeleteInternship(ctx, *id)
		if err != nil {
			return fmt.Errorf("failed to delete internship %s: %w", *id, err)
		}
		fmt.Fprintf(out, "Deleted internship %s: %s\n", *id, describe(res))
		return nil

	case "help":
		help(out)
		return nil

	default:
		help(out)
		return fmt.Errorf("unknown command %q", command)
	}
}

func describe(res *models.MutationResult) string {
	if res == nil {
		return "ok"
	}
	if res.ID != "" {
		return res.ID
	}
	if res.Message != "" {
		return res.Message
	}
	return "ok"
}

func printJSON(out io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

func help(out io.Writer) {
	fmt.Fprint(out, `
Usage: internship-admin <command> [flags]

Commands:
  list    List internships, optionally for one department
  show    Print one internship as JSON
  add     Create an internship
  delete  Delete an internship
  help    Show this help message

Examples:
  internship-admin list -department Finance
  internship-admin show -id 12
  internship-admin add -title "Data Intern" -department IT -location Pune -stipend 15000 -capacity 2 -skills "Python,SQL"
  internship-admin delete -id 12

The service address comes from INTERNMATCH_RECOMMENDER_BASE_URL or recommender.base_url in configs/config.yaml.
Use 'internship-admin <command> -h' for more information about a command.
`)
}
