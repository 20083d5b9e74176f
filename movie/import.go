package movie

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cinehub/errs"
)

// ImportResult reports a bulk import: how many rows persisted and, in
// input order, why the others did not. Committed rows are never rolled
// back on partial failure.
type ImportResult struct {
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}

// ImportCSV streams movie rows from a CSV document. Expected columns:
// title, description, release_year, genres, actors; the genre and actor
// cells hold comma-separated names. A malformed row is recorded and
// skipped, it never aborts the batch.
func (uc *Usecase) ImportCSV(ctx context.Context, r io.Reader) (ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	columns, err := parseImportHeader(reader)
	if err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{Errors: []string{}}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("unknown: %v", err))
			continue
		}

		row := columns.row(record)
		if err := uc.importRow(ctx, row); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", row.label(), errs.ErrorMessage(err)))
			continue
		}
		result.Imported++
	}

	return result, nil
}

func (uc *Usecase) importRow(ctx context.Context, row importRow) error {
	if row.title == "" {
		return errs.Errorf(errs.EINVALID, "title is required")
	}

	year, err := strconv.Atoi(row.releaseYear)
	if err != nil {
		return errs.Errorf(errs.EINVALID, "invalid release_year %q", row.releaseYear)
	}

	var genreIDs []int64
	for _, name := range splitNames(row.genres) {
		g, err := uc.genres.GetOrCreateByName(ctx, name)
		if err != nil {
			return err
		}
		genreIDs = append(genreIDs, g.ID)
	}

	var actorIDs []int64
	for _, name := range splitNames(row.actors) {
		a, err := uc.actors.GetOrCreateByName(ctx, name)
		if err != nil {
			return err
		}
		actorIDs = append(actorIDs, a.ID)
	}

	_, err = uc.AddMovie(ctx, Movie{
		Title:       row.title,
		Description: row.description,
		ReleaseYear: year,
	}, genreIDs, actorIDs)
	return err
}

// splitNames splits a comma-separated cell, trimming whitespace and
// dropping empties.
func splitNames(cell string) []string {
	var names []string
	for _, part := range strings.Split(cell, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}

type importColumns struct {
	title, description, releaseYear, genres, actors int
}

type importRow struct {
	title, description, releaseYear, genres, actors string
}

func (r importRow) label() string {
	if r.title == "" {
		return "unknown"
	}
	return r.title
}

func parseImportHeader(reader *csv.Reader) (importColumns, error) {
	header, err := reader.Read()
	if err != nil {
		return importColumns{}, errs.Errorf(errs.EINVALID, "cannot read csv header")
	}

	columns := importColumns{title: -1, description: -1, releaseYear: -1, genres: -1, actors: -1}
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "title":
			columns.title = i
		case "description":
			columns.description = i
		case "release_year":
			columns.releaseYear = i
		case "genres":
			columns.genres = i
		case "actors":
			columns.actors = i
		}
	}
	if columns.title == -1 || columns.releaseYear == -1 {
		return importColumns{}, errs.Errorf(errs.EINVALID, "missing required columns in csv header")
	}

	return columns, nil
}

func (c importColumns) row(record []string) importRow {
	cell := func(idx int) string {
		if idx < 0 || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}
	return importRow{
		title:       cell(c.title),
		description: cell(c.description),
		releaseYear: cell(c.releaseYear),
		genres:      cell(c.genres),
		actors:      cell(c.actors),
	}
}
