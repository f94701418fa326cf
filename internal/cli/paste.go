package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/richtext/internal/configloader"
	"github.com/yaklabco/richtext/internal/logging"
	"github.com/yaklabco/richtext/pkg/config"
	"github.com/yaklabco/richtext/pkg/paste"
	"github.com/yaklabco/richtext/pkg/richtext"
)

type pasteFlags struct {
	converter converterFlags
	output    string
	text      string
	html      string
	into      string
	selection []int
	markdown  bool
	code      bool
	flavor    string
	plain     bool
	internal  bool
	source    string
}

func newPasteCommand() *cobra.Command {
	flags := &pasteFlags{}

	cmd := &cobra.Command{
		Use:   "paste",
		Short: "Convert pasted content into a rich-text value",
		Long: `Convert clipboard content the way an editable region would on paste.

Plain text is read from --text or standard input. Text that looks like code
becomes a preformatted block, Markdown is rendered, and anything else is
inserted as plain text. With --html the HTML flavor of the clipboard is used
instead. With --into the result is inserted into the fragment in that file at
--selection (default: the end).

--plain inserts only the text of the clipboard, for regions that do not allow
formatting. --internal treats --html as content copied from another rich-text
region: its formats and nested lists are kept, and --source-multiline names
the line element of the region it was copied from.

Examples:
  pbpaste | richtext paste
  richtext paste --text '**bold** move' --output inspect
  richtext paste --html clip.html --into page.html --selection 4
  richtext paste --html copied.html --internal --source-multiline li --multiline li`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPaste(cmd, flags)
		},
	}

	flags.converter.register(cmd)
	cmd.Flags().StringVarP(&flags.output, "output", "o", outputHTML, "output: html, json, inspect")
	cmd.Flags().StringVar(&flags.text, "text", "", "plain-text clipboard content (default: stdin)")
	cmd.Flags().StringVar(&flags.html, "html", "", "file holding the HTML clipboard content")
	cmd.Flags().StringVar(&flags.into, "into", "", "file holding the fragment to paste into")
	cmd.Flags().IntSliceVar(&flags.selection, "selection", nil, "selection start[,end] in the --into fragment")
	cmd.Flags().BoolVar(&flags.markdown, "markdown", true, "render plain text that looks like Markdown")
	cmd.Flags().BoolVar(&flags.code, "code", true, "detect source code in plain text")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "", "Markdown flavor: commonmark, gfm")
	cmd.Flags().BoolVar(&flags.plain, "plain", false, "insert the clipboard as plain text only")
	cmd.Flags().BoolVar(&flags.internal, "internal", false, "--html was copied from another rich-text region")
	cmd.Flags().StringVar(&flags.source, "source-multiline", "", "line element of the region --html was copied from")

	return cmd
}

func (f *pasteFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("markdown") {
		cfg.Paste.Markdown = &f.markdown
	}
	if cmd.Flags().Changed("code") {
		cfg.Paste.CodeDetection = &f.code
	}
	if cmd.Flags().Changed("flavor") {
		if !configloader.IsValidFlavor(config.Flavor(f.flavor)) {
			return usageError(fmt.Errorf("invalid flavor %q: must be commonmark or gfm", f.flavor))
		}
		cfg.Paste.Flavor = config.Flavor(f.flavor)
	}
	if (f.internal || f.source != "") && f.html == "" {
		return usageError(errors.New("--internal and --source-multiline require --html"))
	}
	return nil
}

func runPaste(cmd *cobra.Command, flags *pasteFlags) error {
	if err := validateOutput(flags.output); err != nil {
		return err
	}
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cfg, _, err := loadConfig(ctx, cmd, nil)
	if err != nil {
		return err
	}
	if err := flags.apply(cmd, cfg); err != nil {
		return err
	}
	conv, err := converterFor(cmd, cfg, &flags.converter)
	if err != nil {
		return err
	}
	opts := cfg.PasteOptions(conv)
	opts.PlainText = flags.plain

	in := paste.Input{Internal: flags.internal || flags.source != "", MultilineTag: flags.source}
	if flags.html != "" {
		content, err := readInput(ctx, cmd, flags.html)
		if err != nil {
			return err
		}
		in.HTML = string(content)
	}
	switch {
	case cmd.Flags().Changed("text"):
		in.PlainText = flags.text
	case flags.html == "":
		content, err := readInput(ctx, cmd, stdinPath)
		if err != nil {
			return err
		}
		in.PlainText = string(content)
	}

	if flags.into == "" {
		res, err := paste.Convert(ctx, in, opts)
		if err != nil {
			return fmt.Errorf("paste: %w", err)
		}
		logger.Debug("converted paste", logging.FieldKind, res.Kind, logging.FieldLanguage, res.Language)
		return writeValue(cmd, conv, res.Value, flags.output)
	}

	content, err := readInput(ctx, cmd, flags.into)
	if err != nil {
		return err
	}
	target, err := conv.Create(string(content))
	if err != nil {
		return fmt.Errorf("parse %s: %w", flags.into, err)
	}
	if len(flags.selection) == 0 {
		target = richtext.Select(target, target.Len(), target.Len())
	}
	target, err = parseSelection(target, flags.selection)
	if err != nil {
		return err
	}

	v, err := paste.Handle(ctx, target, in, opts)
	if err != nil {
		return fmt.Errorf("paste: %w", err)
	}
	return writeValue(cmd, conv, v, flags.output)
}
