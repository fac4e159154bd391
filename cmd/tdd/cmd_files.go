package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var fileContent string

// writeTestCmd writes a file into the test directory.
var writeTestCmd = &cobra.Command{
	Use:   "write-test [file-name]",
	Short: "Write a file into the test directory",
	Long: `Writes content into the managed test directory. Content comes from
--content or, when the flag is absent, from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		content, err := contentArg()
		if err != nil {
			return err
		}

		res, err := a.ws.WriteTestFile(args[0], content)
		if err != nil {
			return err
		}
		return printJSON(res)
	},
}

// writeCodeCmd writes a file into the code directory.
var writeCodeCmd = &cobra.Command{
	Use:   "write-code [file-name]",
	Short: "Write a file into the code directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		content, err := contentArg()
		if err != nil {
			return err
		}

		res, err := a.ws.WriteCodeFile(args[0], content)
		if err != nil {
			return err
		}
		return printJSON(res)
	},
}

var readFromTests bool

// readCmd prints a workspace file.
var readCmd = &cobra.Command{
	Use:   "read [file-name]",
	Short: "Print a file from the code directory (or tests with --tests)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		dir := a.ws.CodeDir()
		if readFromTests {
			dir = a.ws.TestDir()
		}

		content, err := a.ws.ReadFile(dir, args[0])
		if err != nil {
			return err
		}
		fmt.Print(content)
		return nil
	},
}

// contentArg returns the --content flag value or reads stdin.
func contentArg() (string, error) {
	if fileContent != "" {
		return fileContent, nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read content from stdin: %w", err)
	}
	return string(data), nil
}

func init() {
	writeTestCmd.Flags().StringVarP(&fileContent, "content", "c", "", "File content (default: read from stdin)")
	writeCodeCmd.Flags().StringVarP(&fileContent, "content", "c", "", "File content (default: read from stdin)")
	readCmd.Flags().BoolVar(&readFromTests, "tests", false, "Read from the test directory")
}
