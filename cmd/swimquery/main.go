// cmd/swimquery/main.go
// Runs a swim search or race listing against the configured database and
// prints the JSON the API would return.
//
// Usage:
//
//	go run ./cmd/swimquery -surname smith -page-size 20
//	go run ./cmd/swimquery -races -q Bondi
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/ldmxd/oceanswimmer/config"
	bundb "github.com/ldmxd/oceanswimmer/db"
	"github.com/ldmxd/oceanswimmer/swims"
)

type options struct {
	races    bool
	q        string
	criteria swims.Criteria
}

func parseArgs(args []string) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("swimquery", flag.ContinueOnError)

	fs.BoolVar(&opts.races, "races", false, "list races instead of searching results")
	fs.StringVar(&opts.q, "q", "", "race name substring (with -races)")
	fs.StringVar(&opts.criteria.Forename, "forename", "", "forename fragment")
	fs.StringVar(&opts.criteria.Surname, "surname", "", "surname fragment")
	fs.Func("race-id", "race id (omit for any race)", func(v string) error {
		id, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid race id %q", v)
		}
		opts.criteria.RaceID = &id
		return nil
	})
	fs.StringVar(&opts.criteria.Category, "category", "", "category, exact match")
	fs.StringVar(&opts.criteria.Gender, "gender", "", "gender code, exact match")
	fs.IntVar(&opts.criteria.Page, "page", 1, "page number")
	fs.IntVar(&opts.criteria.PageSize, "page-size", swims.DefaultPageSize, "rows per page")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	ctx := context.Background()

	cfg := config.Load()
	db, err := bundb.Setup(ctx, cfg)
	if err != nil {
		log.Fatal("database:", err)
	}
	defer db.Close()

	store := swims.NewStore(db, cfg.View)

	var out any
	if opts.races {
		out, err = store.Races(ctx, opts.q)
	} else {
		out, err = store.Search(ctx, opts.criteria)
	}
	if err != nil {
		log.Fatal("query:", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatal("encode:", err)
	}
}
