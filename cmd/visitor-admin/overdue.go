package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/visitorgate/visitor-admin/internal/core/ports"
	"github.com/visitorgate/visitor-admin/internal/core/service"
	"github.com/visitorgate/visitor-admin/internal/infrastructure/export"
	"github.com/visitorgate/visitor-admin/pkg/logger"
)

var overdueCmd = &cobra.Command{
	Use:   "overdue",
	Short: "Print visitors past the overdue threshold, oldest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		cfg, log, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		loc, err := cfg.Location()
		if err != nil {
			return err
		}

		st, err := openStores(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer st.close(ctx)

		svc := service.NewVisitorService(st.visitors, export.NewXLSXReporter(loc), loc, logger.Component("visitor_service"))
		summary, err := svc.Overdue(ctx)
		if err != nil {
			return err
		}
		return printOverdue(cmd.OutOrStdout(), summary, loc)
	},
}

func printOverdue(w io.Writer, s *ports.OverdueSummary, loc *time.Location) error {
	if len(s.Alerts) == 0 {
		_, err := fmt.Fprintln(w, "No overdue visitors.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEVERITY\tVISITOR\tTYPE\tTAG\tON SITE\tCHECKED IN")
	for _, a := range s.Alerts {
		r := a.Visitor.Record
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			a.Severity.Label(), r.VisitorName, r.Category, r.TagDisplay(), a.DurationText,
			r.TimeIn.In(loc).Format("2006-01-02 15:04"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d overdue: %d critical, %d high, %d medium\n",
		len(s.Alerts), s.Critical, s.High, s.Medium)
	return err
}
