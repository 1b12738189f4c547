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

// This is the central command: it merges the holders' partial table
// payloads into the global contingency table. The orchestration layer
// is expected to have collected one payload file per holder before
// this command runs.
// Usage example:
//
//	aggregate --input_files=a.json,b.json --group_cols=sex,region --include_totals --include_chi2 --output_file=result.json
package main

import (
	"encoding/json"
	"flag"
	"os"
	"strings"

	log "github.com/golang/glog"

	"github.com/vantage6/v6-crosstab-go/crosstab"
)

var (
	inputFiles    = flag.String("input_files", "", "Comma-separated list of partial table payload files, one per holder.")
	groupCols     = flag.String("group_cols", "", "Comma-separated list of the group columns shared by all partial tables.")
	includeTotals = flag.Bool("include_totals", true, "Append a totals row and column to the aggregated table.")
	includeChi2   = flag.Bool("include_chi2", true, "Add a chi-squared test of independence to the result.")
	outputFile    = flag.String("output_file", "", "Output file name for the aggregated result document.")
)

func main() {
	flag.Parse()

	if *inputFiles == "" {
		log.Exit("No input files were chosen")
	}
	if *groupCols == "" {
		log.Exit("No group columns were chosen")
	}
	if *outputFile == "" {
		log.Exit("No output file was chosen")
	}

	files := strings.Split(*inputFiles, ",")
	payloads := make([][]byte, len(files))
	for i, file := range files {
		payload, err := os.ReadFile(file)
		if err != nil {
			log.Exitf("Couldn't read the payload file = %q, err = %v", file, err)
		}
		payloads[i] = payload
	}

	result, err := crosstab.Aggregate(payloads, &crosstab.AggregateOptions{
		GroupCols:     strings.Split(*groupCols, ","),
		IncludeTotals: *includeTotals,
		IncludeChi2:   *includeChi2,
	})
	if err != nil {
		log.Exitf("Couldn't aggregate the partial tables: %v", err)
	}

	doc, err := json.Marshal(result)
	if err != nil {
		log.Exitf("Couldn't serialize the result: %v", err)
	}
	if err := os.WriteFile(*outputFile, doc, 0o644); err != nil {
		log.Exitf("Couldn't write the output file = %q, err = %v", *outputFile, err)
	}
	log.Infof("Aggregated result written to %q", *outputFile)
}
