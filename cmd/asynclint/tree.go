package main

import (
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/spf13/cobra"

	"asynclint/internal/source"
	"asynclint/internal/syntax"
)

var treeCmd = &cobra.Command{
	Use:   "tree [flags] <file.js>",
	Short: "Dump the parse tree of a JavaScript file",
	Long:  `Tree prints the named syntax nodes of one file with their positions, useful for debugging check behavior`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTree,
}

func init() {
	treeCmd.Flags().Bool("text", false, "print node source text for leaf nodes")
}

func runTree(cmd *cobra.Command, args []string) error {
	withText, err := cmd.Flags().GetBool("text")
	if err != nil {
		return fmt.Errorf("failed to get text flag: %w", err)
	}

	fileSet := source.NewFileSet()
	fileID, err := fileSet.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load file: %w", err)
	}

	tree, err := syntax.Parse(cmd.Context(), fileSet.Get(fileID))
	if err != nil {
		return fmt.Errorf("failed to parse: %w", err)
	}
	defer tree.Close()

	printer := &treePrinter{
		fileSet:  fileSet,
		tree:     tree,
		withText: withText,
	}
	syntax.Walk(tree.Root(), printer)
	return nil
}

type treePrinter struct {
	fileSet  *source.FileSet
	tree     *syntax.Tree
	withText bool
	depth    int
}

func (p *treePrinter) Enter(n *sitter.Node) bool {
	start, _ := p.fileSet.Resolve(p.tree.Span(n))
	line := fmt.Sprintf("%s%s [%d:%d]", strings.Repeat("  ", p.depth), n.Type(), start.Line, start.Col)
	if p.withText && n.NamedChildCount() == 0 {
		line += fmt.Sprintf(" %q", p.tree.Text(n))
	}
	fmt.Fprintln(os.Stdout, line)
	p.depth++
	return true
}

func (p *treePrinter) Exit(n *sitter.Node) {
	p.depth--
}
