package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.gatech.edu/ECEInnovation/MIPS-Assembler/assembler"
	"github.gatech.edu/ECEInnovation/MIPS-Assembler/config"
	"github.gatech.edu/ECEInnovation/MIPS-Assembler/languageServer"
	"github.gatech.edu/ECEInnovation/MIPS-Assembler/util"
	"github.gatech.edu/ECEInnovation/MIPS-Assembler/webserver"
)

var (
	configPath string
	conf       *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "mipsasm",
	Short: "Two-pass MIPS assembler, language server and web assembler",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		conf, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("could not load %s: %w", configPath, err)
		}
		util.LoggingEnabled = conf.LoggingEnabled
		util.LogEndpoint = conf.LogEndpoint
		assembler.SetConfig(conf.AssemblerConfig())
		return nil
	},
	SilenceUsage: true,
}

var assembleOpts struct {
	output       string
	intermediate string
	symbols      string
	relocations  string
	dump         bool
}

var assembleCmd = &cobra.Command{
	Use:   "assemble sourceFile",
	Short: "Assemble a file into hex machine words",
	Long: `Assemble expands pseudo-instructions, binds labels to addresses and
encodes every instruction as 8 hex digits per line. Jump targets are not
resolved; each jump is written to the relocation table for the linker.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath := args[0]
		b, e := os.ReadFile(filePath)
		if e != nil {
			return fmt.Errorf("could not read file %s: %w", filePath, e)
		}

		res := assembler.Assemble(string(b))
		if assembleOpts.dump {
			pp.Fprintf(os.Stderr, "Symbols: %v\n", res.Labels.Entries())
			pp.Fprintf(os.Stderr, "Relocations: %v\n", res.Relocations.Entries())
		}

		errorCount := 0
		builder := strings.Builder{}
		for _, diag := range res.Diagnostics {
			if diag.Severity == assembler.Error {
				errorCount++
			}
			builder.WriteString(fmt.Sprintf("\t%s:%d:%d: %s\n", filepath.Base(filePath), diag.Range.Start.Line+1, diag.Range.Start.Char, diag.Message))
		}
		if builder.Len() > 0 {
			log.Printf("Diagnostics:\n%s", builder.String())
		}
		if errorCount > 0 {
			return fmt.Errorf("could not assemble %s: %d error(s)", filePath, errorCount)
		}

		outputs := []struct {
			path  string
			write func(io.Writer) error
		}{
			{assembleOpts.intermediate, writeString(res.PassOne)},
			{assembleOpts.symbols, writeTable(res.Labels)},
			{assembleOpts.relocations, writeTable(res.Relocations)},
			{assembleOpts.output, writeString(res.HexText)},
		}
		for _, out := range outputs {
			if err := writeOutput(out.path, out.write); err != nil {
				return err
			}
		}
		return nil
	},
}

func writeString(s string) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	}
}

func writeTable(t *assembler.SymbolTable) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := t.WriteTo(w)
		return err
	}
}

// writeOutput writes to path, "-" meaning stdout. An empty path is skipped.
func writeOutput(path string, write func(io.Writer) error) error {
	if path == "" {
		return nil
	}
	if path == "-" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

var languageServerCmd = &cobra.Command{
	Use:   "languageServer [debug|tcp]",
	Short: "Run the language server over stdin/stdout, or over TCP",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 1 && args[0] == "tcp" {
			// tcp mode so it can be remotely debugged
			languageServer.ListenAndServeTCP(conf.LanguageServerAddr)
			return
		}
		if len(args) == 1 && args[0] == "debug" {
			util.LoggingEnabled = true
		}
		languageServer.ListenAndServe()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web assembler page",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return webserver.ListenAndServe(conf.WebServerAddr)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "configuration file")

	assembleCmd.Flags().StringVarP(&assembleOpts.output, "output", "o", "-", "machine code output file")
	assembleCmd.Flags().StringVar(&assembleOpts.intermediate, "intermediate", "", "pass one output file")
	assembleCmd.Flags().StringVar(&assembleOpts.symbols, "symbols", "", "symbol table output file")
	assembleCmd.Flags().StringVar(&assembleOpts.relocations, "relocations", "", "relocation table output file")
	assembleCmd.Flags().BoolVar(&assembleOpts.dump, "dump", false, "print both tables to stderr")

	rootCmd.AddCommand(assembleCmd, languageServerCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
