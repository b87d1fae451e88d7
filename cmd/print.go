package cmd

import (
	"sort"

	"github.com/fatih/structs"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

// printFields print the flat fields of v as "key: value" lines, keys taken from json tags
func printFields(cmd *cobra.Command, v interface{}) {
	fields := structs.Map(v)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		cmd.Printf("%s: %s\n", k, cast.ToString(fields[k]))
	}
}
