//
// Copyright 2024 vantage6
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// This is the holder-side command: it builds the privacy-suppressed
// partial contingency table over a local CSV dataset. Privacy settings
// are read from the CROSSTAB_* environment variables.
// Usage example:
//
//	partialtab --input_file=data.csv --results_col=disease --group_cols=sex,region --output_file=partial.json
package main

import (
	"flag"
	"os"
	"strings"

	log "github.com/golang/glog"

	"github.com/vantage6/v6-crosstab-go/crosstab"
	"github.com/vantage6/v6-crosstab-go/envconfig"
)

var (
	inputFile  = flag.String("input_file", "", "Input csv file name with the holder's categorical data.")
	resultsCol = flag.String("results_col", "", "Column for which counts are calculated.")
	groupCols  = flag.String("group_cols", "", "Comma-separated list of one or more columns to group the data by.")
	outputFile = flag.String("output_file", "", "Output file name for the partial table payload.")
)

func main() {
	flag.Parse()

	if *inputFile == "" {
		log.Exit("No input file was chosen")
	}
	if *resultsCol == "" {
		log.Exit("No results column was chosen")
	}
	if *groupCols == "" {
		log.Exit("No group columns were chosen")
	}
	if *outputFile == "" {
		log.Exit("No output file was chosen")
	}

	settings, err := envconfig.Load()
	if err != nil {
		log.Exitf("Couldn't load privacy settings: %v", err)
	}

	ds, err := crosstab.ReadCSV(*inputFile)
	if err != nil {
		log.Exitf("Couldn't read the dataset: %v", err)
	}

	table, err := crosstab.BuildPartial(ds, &crosstab.PartialOptions{
		ResultsCol: *resultsCol,
		GroupCols:  strings.Split(*groupCols, ","),
		Settings:   settings,
	})
	if err != nil {
		log.Exitf("Couldn't build the partial table: %v", err)
	}

	payload, err := table.MarshalPayload()
	if err != nil {
		log.Exitf("Couldn't serialize the partial table: %v", err)
	}
	if err := os.WriteFile(*outputFile, payload, 0o644); err != nil {
		log.Exitf("Couldn't write the output file = %q, err = %v", *outputFile, err)
	}
	log.Infof("Partial table written to %q", *outputFile)
}
