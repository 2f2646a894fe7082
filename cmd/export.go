package cmd

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ntu-info/emogo-backend-chaudharyinder/config"
	"github.com/ntu-info/emogo-backend-chaudharyinder/constant"
	"github.com/ntu-info/emogo-backend-chaudharyinder/dto"
	"github.com/ntu-info/emogo-backend-chaudharyinder/entities"
	"github.com/ntu-info/emogo-backend-chaudharyinder/pkg/filter"
	"github.com/ntu-info/emogo-backend-chaudharyinder/repository"
	"github.com/ntu-info/emogo-backend-chaudharyinder/service"
)

// export dumps records to stdout with the same display filter the admin
// dashboard applies in the browser.
func export(cfg *config.Config) *cobra.Command {
	var (
		mood   string
		note   string
		from   string
		to     string
		format string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "dump filtered records to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
			ctx, cancel := context.WithCancel(logger.WithContext(context.Background()))
			defer cancel()

			state := filter.State{Note: note, Mood: mood}
			if from != "" {
				t, err := time.Parse("2006-01-02", from)
				if err != nil {
					return fmt.Errorf("invalid --from date: %w", err)
				}
				state.From = &t
			}
			if to != "" {
				t, err := time.Parse("2006-01-02", to)
				if err != nil {
					return fmt.Errorf("invalid --to date: %w", err)
				}
				state.To = &t
			}

			client, err := config.NewMongoConn(ctx, &cfg.Mongo)
			if err != nil {
				return err
			}

			repo := repository.NewRepo(client.Database(cfg.Mongo.Database))
			recordService := service.NewService(repo)

			records, err := recordService.List(ctx, dto.ListQuery{Limit: constant.DashboardFetchLimit})
			if err != nil {
				return err
			}
			records = filter.Apply(records, state)

			switch format {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			case "csv":
				return writeCSV(cmd.OutOrStdout(), records)
			default:
				return fmt.Errorf("unknown format %q", format)
			}
		},
	}

	cmd.Flags().StringVar(&mood, "mood", "", "exact mood match")
	cmd.Flags().StringVar(&note, "note", "", "case-insensitive note substring")
	cmd.Flags().StringVar(&from, "from", "", "inclusive lower date bound (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "inclusive upper date bound (YYYY-MM-DD)")
	cmd.Flags().StringVar(&format, "format", "csv", "output format: csv or json")

	return cmd
}

func writeCSV(w io.Writer, records []*entities.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "timestamp", "mood", "latitude", "longitude", "note", "vlog_file"}); err != nil {
		return err
	}

	for _, record := range records {
		note := ""
		if record.Note != nil {
			note = *record.Note
		}
		row := []string{
			record.ID.Hex(),
			record.Timestamp,
			record.Mood,
			strconv.FormatFloat(record.Latitude, 'f', -1, 64),
			strconv.FormatFloat(record.Longitude, 'f', -1, 64),
			note,
			record.VlogFile,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
