package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"omibyte.io/arm9rt/arm9"
	"omibyte.io/arm9rt/layout"
	"omibyte.io/arm9rt/rt"
)

var (
	vectorsOpts = struct {
		layout string
	}{}

	vectorsCmd = &cobra.Command{
		Use:   "vectors",
		Short: "Print the vector table and memory layout",
		Long:  "Print the exception vector table offsets and the memory layout the runtime will be linked against",
		RunE: func(cmd *cobra.Command, args []string) error {
			l := layout.Default()
			if vectorsOpts.layout != "" {
				var err error
				l, err = layout.LoadFile(vectorsOpts.layout)
				if err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "vector table (%d bytes at 0x%08X):\n", rt.VectorTableSize, uint32(rt.VectorBase))
			fmt.Fprintf(out, "  0x%02X  Reset\n", rt.VectorReset)
			for _, name := range rt.ExceptionNames() {
				e, _ := rt.ExceptionByName(name)
				fmt.Fprintf(out, "  0x%02X  %s\n", e.VectorOffset(), name)
			}
			fmt.Fprintf(out, "  0x%02X  (reserved)\n", rt.VectorReserved)

			fmt.Fprintln(out, "stacks:")
			for _, m := range []arm9.Mode{
				arm9.ModeFIQ, arm9.ModeIRQ, arm9.ModeAbort,
				arm9.ModeUndefined, arm9.ModeSupervisor, arm9.ModeSystem,
			} {
				fmt.Fprintf(out, "  %-10s 0x%08X\n", m, l.StackTop(m))
			}
			fmt.Fprintf(out, "bss:  0x%08X-0x%08X\n", l.BSS.Start, l.BSS.End)
			fmt.Fprintf(out, "data: 0x%08X-0x%08X load 0x%08X\n", l.Data.Start, l.Data.End, l.Data.Load)
			fmt.Fprintf(out, "heap: 0x%08X\n", l.HeapStart())
			return nil
		},
	}
)

func init() {
	vectorsCmd.Flags().StringVar(&vectorsOpts.layout, "layout", "", "memory layout document")
	rootCmd.AddCommand(vectorsCmd)
}
