package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog"

	"github.com/riverfjs/openpen-go"
)

// usageError 命令行用法错误，退出码为 2
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("openpen", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() { usage(stderr) }

	configPath := flags.String("config", "", "Path to a TOML config file")
	debugFlag := flags.Bool("debug", false, "Enable debug logging (stderr)")
	if err := flags.Parse(argv); err != nil {
		return 2
	}

	cfg := openpen.DefaultConfig()
	if *configPath != "" {
		loaded, err := openpen.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return 1
		}
		cfg = loaded
	}

	level, err := openpen.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid log_level: %v\n", err)
		return 1
	}
	if *debugFlag {
		level = zerolog.DebugLevel
	}
	logger := openpen.NewLogger(zerolog.ConsoleWriter{Out: stderr}, level)
	opts := []openpen.Option{openpen.WithConfig(cfg), openpen.WithLogger(logger)}

	args := flags.Args()
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	switch args[0] {
	case "convert":
		err = convert(ctx, args[1:], opts)
	case "stats":
		err = stats(ctx, args[1:], stdout, opts)
	case "find":
		err = find(ctx, args[1:], stdout, opts)
	default:
		err = usageError{fmt.Sprintf("unknown command %q", args[0])}
	}

	var ue usageError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &ue):
		fmt.Fprintf(stderr, "%v\n\n", err)
		usage(stderr)
		return 2
	default:
		logger.Error().Err(err).Str("command", args[0]).Msg("command failed")
		return 1
	}
}

func convert(ctx context.Context, args []string, opts []openpen.Option) error {
	if len(args) != 2 {
		return usageError{"convert needs <in> and <out>"}
	}
	doc, err := openpen.Open(ctx, args[0], opts...)
	if err != nil {
		return err
	}
	return openpen.Save(ctx, doc, args[1], opts...)
}

func stats(ctx context.Context, args []string, stdout io.Writer, opts []openpen.Option) error {
	if len(args) != 1 {
		return usageError{"stats needs <file>"}
	}
	doc, err := openpen.Open(ctx, args[0], opts...)
	if err != nil {
		return err
	}
	st := openpen.Stats(doc)
	fmt.Fprintf(stdout, "paragraphs: %d\nwords: %d\ncharacters: %d\n", st.Blocks, st.Words, st.Characters)
	return nil
}

func find(ctx context.Context, args []string, stdout io.Writer, opts []openpen.Option) error {
	if len(args) != 2 {
		return usageError{"find needs <file> and <query>"}
	}
	doc, err := openpen.Open(ctx, args[0], opts...)
	if err != nil {
		return err
	}

	// 逐个列出匹配，回绕到第一个匹配时停止
	from := 0
	first := -1
	for {
		start, end, ok := openpen.Find(doc, args[1], from)
		if !ok || start == first {
			break
		}
		if first < 0 {
			first = start
		}
		fmt.Fprintf(stdout, "%d-%d\n", start, end)
		from = end
	}
	if first < 0 {
		return fmt.Errorf("%q not found", args[1])
	}
	return nil
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  openpen [-config file] [-debug] convert <in> <out>   # convert by file extension")
	fmt.Fprintln(w, "  openpen [-config file] [-debug] stats <file>         # paragraph, word and character counts")
	fmt.Fprintln(w, "  openpen [-config file] [-debug] find <file> <query>  # list match offsets")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Formats: .docx .html .htm .rtf .md .txt (read/write), .pdf (write only)")
}
