/*
 * Directo XMLCore Client SDK for Go, (C) 2022 Directo OU.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// directo is a command-line exerciser for the Directo XMLCore API: list,
// get and put records from the shell. Connection settings come from the
// DIRECTO_* environment variables.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/minio/cli"

	"github.com/5dvision/directo"
	"github.com/5dvision/directo/internal/logger"
)

var globalFlags = []cli.Flag{
	cli.BoolFlag{
		Name:  "trace",
		Usage: "trace every API call to stderr",
	},
	cli.BoolFlag{
		Name:  "quiet",
		Usage: "suppress informational output",
	},
}

var listCmd = cli.Command{
	Name:      "list",
	Usage:     "List records of a resource",
	ArgsUsage: "RESOURCE",
	Flags: []cli.Flag{
		cli.StringSliceFlag{
			Name:  "filter",
			Usage: "filter as key=value, repeatable",
		},
	},
	Action: mainList,
	CustomHelpTemplate: `NAME:
  directo {{.Name}} - {{.Usage}}

USAGE:
  directo {{.Name}} RESOURCE [--filter key=value ...]

EXAMPLES:
  1. List all customers changed since a timestamp
      $ directo {{.Name}} customer --filter changed=1577836800
`,
}

var getCmd = cli.Command{
	Name:      "get",
	Usage:     "Fetch one record by its primary key",
	ArgsUsage: "RESOURCE KEY",
	Action:    mainGet,
	CustomHelpTemplate: `NAME:
  directo {{.Name}} - {{.Usage}}

USAGE:
  directo {{.Name}} RESOURCE KEY

EXAMPLES:
  1. Fetch item I-1001
      $ directo {{.Name}} item I-1001
`,
}

var putCmd = cli.Command{
	Name:      "put",
	Usage:     "Write records from a JSON file",
	ArgsUsage: "RESOURCE FILE",
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:  "batch",
			Usage: "FILE holds a JSON array of records, written in one request",
		},
	},
	Action: mainPut,
	CustomHelpTemplate: `NAME:
  directo {{.Name}} - {{.Usage}}

USAGE:
  directo {{.Name}} RESOURCE FILE [--batch]

EXAMPLES:
  1. Create or update one item from a JSON object
      $ directo {{.Name}} item item.json
`,
}

func main() {
	app := cli.NewApp()
	app.Name = "directo"
	app.Usage = "Directo XMLCore API client"
	app.Flags = globalFlags
	app.Commands = []cli.Command{listCmd, getCmd, putCmd}
	if err := app.Run(os.Args); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

// newClient builds a client from the environment and the global flags.
func newClient(ctx *cli.Context) *directo.Client {
	if ctx.GlobalBool("quiet") {
		logger.EnableQuiet()
	}
	cfg, err := directo.ConfigFromEnv()
	logger.FatalIf(context.Background(), err)
	client, err := directo.New(cfg)
	logger.FatalIf(context.Background(), err)
	if ctx.GlobalBool("trace") {
		client.TraceOn(os.Stderr)
	}
	return client
}

func lookupResource(name string) directo.Resource {
	res, ok := directo.Resources()[name]
	if !ok {
		known := make([]string, 0)
		for rname := range directo.Resources() {
			known = append(known, rname)
		}
		logger.FatalIf(context.Background(), fmt.Errorf("unknown resource %q, known resources: %s",
			name, strings.Join(known, ", ")))
	}
	return res
}

func mainList(ctx *cli.Context) {
	if ctx.NArg() != 1 {
		cli.ShowCommandHelpAndExit(ctx, "list", 1)
	}
	res := lookupResource(ctx.Args().First())
	filters := make(map[string]interface{})
	for _, raw := range ctx.StringSlice("filter") {
		key, value, found := strings.Cut(raw, "=")
		if !found {
			logger.FatalIf(context.Background(), fmt.Errorf("invalid filter %q, expected key=value", raw))
		}
		filters[key] = value
	}
	client := newClient(ctx)
	records, err := client.List(context.Background(), res, filters)
	logger.FatalIf(context.Background(), err)
	printRecords(records)
	logger.Info("%s records fetched", humanize.Comma(int64(len(records))))
}

func mainGet(ctx *cli.Context) {
	if ctx.NArg() != 2 {
		cli.ShowCommandHelpAndExit(ctx, "get", 1)
	}
	res := lookupResource(ctx.Args().Get(0))
	client := newClient(ctx)
	record, err := client.Get(context.Background(), res, ctx.Args().Get(1))
	logger.FatalIf(context.Background(), err)
	if record == nil {
		logger.FatalIf(context.Background(), fmt.Errorf("no %s record with key %q",
			res.Name(), ctx.Args().Get(1)))
	}
	printRecords([]*directo.Record{record})
}

func mainPut(ctx *cli.Context) {
	if ctx.NArg() != 2 {
		cli.ShowCommandHelpAndExit(ctx, "put", 1)
	}
	res := lookupResource(ctx.Args().Get(0))
	records, err := readRecordsFile(ctx.Args().Get(1), ctx.Bool("batch"))
	logger.FatalIf(context.Background(), err)
	client := newClient(ctx)
	var result []*directo.Record
	if ctx.Bool("batch") {
		result, err = client.PutBatch(context.Background(), res, records)
	} else {
		result, err = client.Put(context.Background(), res, records[0])
	}
	logger.FatalIf(context.Background(), err)
	printRecords(result)
	logger.Info("%d record(s) written", len(records))
}

// readRecordsFile reads one JSON object, or with batch an array of objects,
// into records preserving field order.
func readRecordsFile(path string, batch bool) ([]*directo.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if !batch {
		record, err := directo.DecodeRecordJSON(file)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %v", path, err)
		}
		return []*directo.Record{record}, nil
	}

	var raws []json.RawMessage
	if err := json.NewDecoder(file).Decode(&raws); err != nil {
		return nil, fmt.Errorf("reading %s: %v", path, err)
	}
	if len(raws) == 0 {
		return nil, fmt.Errorf("reading %s: no records in file", path)
	}
	records := make([]*directo.Record, 0, len(raws))
	for i, raw := range raws {
		record := directo.NewRecord()
		if err := record.UnmarshalJSON(raw); err != nil {
			return nil, fmt.Errorf("reading %s record %d: %v", path, i, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func printRecords(records []*directo.Record) {
	out, err := json.MarshalIndent(records, "", "  ")
	logger.FatalIf(context.Background(), err)
	fmt.Println(string(out))
}
