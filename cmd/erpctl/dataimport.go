// cmd/erpctl/dataimport.go
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/acippicacipa/orchid-erp-sub001/internal/repository"
	"github.com/urfave/cli/v2"
)

func importCommand() *cli.Command {
	return &cli.Command{
		Name:   "import",
		Usage:  "Bulk-load master data from CSV files",
		Before: requireAuth,
		Subcommands: []*cli.Command{
			{
				Name:  "templates",
				Usage: "List available import templates",
				Action: func(c *cli.Context) error {
					templates, err := state(c).imports.ListTemplates(c.Context)
					if err != nil {
						return err
					}
					w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "TYPE\tNAME\tCOLUMNS")
					for _, t := range templates {
						fmt.Fprintf(w, "%s\t%s\t%s\n", t.DataType, t.Name, strings.Join(t.Columns, ","))
					}
					w.Flush()
					return nil
				},
			},
			{
				Name:      "upload",
				Usage:     "Upload a CSV file for import",
				ArgsUsage: "<file.csv>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "type", Required: true, Usage: "Data type, see import templates"},
				},
				Action: func(c *cli.Context) error {
					path := c.Args().First()
					if path == "" {
						return fmt.Errorf("file argument is required")
					}
					f, err := os.Open(path)
					if err != nil {
						return err
					}
					defer f.Close()

					job, err := state(c).imports.Upload(c.Context, c.String("type"), filepath.Base(path), f)
					if err != nil {
						return err
					}
					fmt.Printf("Uploaded job %d: %d row(s), status %s\n", job.ID, job.TotalRows, job.Status)
					return nil
				},
			},
			{
				Name:  "validate",
				Usage: "Validate an uploaded job",
				Flags: []cli.Flag{newIDFlag("Import job ID")},
				Action: func(c *cli.Context) error {
					job, err := state(c).imports.Validate(c.Context, c.Int64("id"))
					if err != nil {
						return err
					}
					fmt.Printf("Job %d: %s, %d imported, %d error(s)\n", job.ID, job.Status, job.ImportedRows, job.ErrorRows)
					return nil
				},
			},
			{
				Name:  "history",
				Usage: "List past import jobs",
				Flags: newPagingFlags(),
				Action: func(c *cli.Context) error {
					page, err := state(c).imports.ListHistory(c.Context, repository.ListOptions{
						Page:     c.Int("page"),
						PageSize: c.Int("page-size"),
					})
					if err != nil {
						return err
					}
					w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tTYPE\tFILE\tSTATUS\tROWS\tBY")
					for _, job := range page.Results {
						fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
							job.ID, job.DataType, job.Filename, job.Status, job.TotalRows, job.UploadedBy)
					}
					w.Flush()
					return nil
				},
			},
			{
				Name:  "logs",
				Usage: "Show row-level logs for a job",
				Flags: []cli.Flag{newIDFlag("Import job ID")},
				Action: func(c *cli.Context) error {
					logs, err := state(c).imports.ListLogs(c.Context, c.Int64("id"))
					if err != nil {
						return err
					}
					for _, entry := range logs {
						fmt.Printf("[%s] row %d: %s\n", entry.Level, entry.RowIndex, entry.Message)
					}
					return nil
				},
			},
		},
	}
}
