// Command replacer renders a JSON or YAML document through a replacer policy.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/zoobzio/replacer"
	"github.com/zoobzio/replacer/bson"
	"github.com/zoobzio/replacer/msgpack"
	"github.com/zoobzio/replacer/xml"
	"github.com/zoobzio/replacer/yaml"
)

var version = "dev"

func main() {
	_ = godotenv.Load()
	registerCodecs()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch command := os.Args[1]; command {
	case "print":
		err = runPrint(os.Args[2:], os.Stdin, os.Stdout)
	case "transform":
		err = runTransform(os.Args[2:], os.Stdin, os.Stdout)
	case "validate":
		err = runValidate(os.Args[2:], os.Stdout)
	case "version":
		fmt.Println(version)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "replacer: %v\n", err)
		os.Exit(1)
	}
}

func registerCodecs() {
	replacer.Register(yaml.New(), "yml")
	replacer.Register(xml.New())
	replacer.Register(msgpack.New())
	replacer.Register(bson.New())
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options] [file]\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "\nCommands:\n")
	fmt.Fprintf(os.Stderr, "  print      Render a document through a policy, indented\n")
	fmt.Fprintf(os.Stderr, "  transform  Render a document through a policy, compact\n")
	fmt.Fprintf(os.Stderr, "  validate   Validate a policy configuration\n")
	fmt.Fprintf(os.Stderr, "  version    Show version information\n")
	fmt.Fprintf(os.Stderr, "\nRun '%s <command> -h' for help on a specific command.\n", os.Args[0])
}

// options are the flags shared by the rendering commands.
type options struct {
	config   string
	input    string
	format   string
	exclude  string
	methods  string
	targets  string
	strategy string
}

func (o *options) bind(fs *flag.FlagSet) {
	fs.StringVar(&o.config, "config", "", "Path to a YAML policy configuration")
	fs.StringVar(&o.input, "input", "", "Input format: json or yaml (default: from file extension, else json)")
	fs.StringVar(&o.format, "format", "", "Output codec: json, yaml, xml, msgpack, bson")
	fs.StringVar(&o.exclude, "exclude", "", "Comma separated keys to exclude")
	fs.StringVar(&o.methods, "methods", "", "Comma separated methods to invoke")
	fs.StringVar(&o.targets, "targets", "", "Comma separated type tags to rebuild")
	fs.StringVar(&o.strategy, "strategy", "", "Key strategy: enumerable, all-string, symbol, all")
}

// loadConfig layers defaults, the config file, the environment, then flags.
func (o *options) loadConfig(fs *flag.FlagSet) (replacer.Config, error) {
	cfg := replacer.DefaultConfig()
	if o.config != "" {
		loaded, err := replacer.LoadConfig(o.config)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	cfg, err := cfg.ApplyEnv()
	if err != nil {
		return cfg, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			cfg.Format = o.format
		case "exclude":
			cfg.Exclude = splitFlag(o.exclude)
		case "methods":
			cfg.Methods = splitFlag(o.methods)
		case "targets":
			cfg.Targets = splitFlag(o.targets)
		case "strategy":
			cfg.Strategy = o.strategy
		}
	})
	return cfg, nil
}

func runPrint(args []string, stdin io.Reader, stdout io.Writer) error {
	return render("print", args, stdin, stdout, func(ctx context.Context, s *replacer.Serializer, doc any) error {
		return s.Print(ctx, doc)
	})
}

func runTransform(args []string, stdin io.Reader, stdout io.Writer) error {
	return render("transform", args, stdin, stdout, func(ctx context.Context, s *replacer.Serializer, doc any) error {
		data, err := s.Marshal(ctx, doc)
		if err != nil {
			return err
		}
		_, err = stdout.Write(append(data, '\n'))
		return err
	})
}

func render(name string, args []string, stdin io.Reader, stdout io.Writer,
	run func(context.Context, *replacer.Serializer, any) error) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	var opts options
	opts.bind(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := opts.loadConfig(fs)
	if err != nil {
		return err
	}

	doc, err := readDocument(fs.Arg(0), opts.input, stdin)
	if err != nil {
		return err
	}

	s, err := cfg.Serializer(replacer.WithOutput(stdout))
	if err != nil {
		return err
	}
	return run(context.Background(), s, doc)
}

func runValidate(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	var opts options
	opts.bind(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := opts.loadConfig(fs)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	p := cfg.Policy()
	fmt.Fprintf(stdout, "exclude:  %s\n", strings.Join(p.ExcludedKeys(), ", "))
	fmt.Fprintf(stdout, "methods:  %s\n", strings.Join(p.Methods(), ", "))
	fmt.Fprintf(stdout, "targets:  %s\n", joinTags(p.Targets()))
	fmt.Fprintf(stdout, "strategy: %s\n", p.KeyStrategy())
	fmt.Fprintf(stdout, "format:   %s\n", cfg.Format)
	return nil
}

// readDocument decodes the input file, or stdin when path is empty or "-".
func readDocument(path, input string, stdin io.Reader) (any, error) {
	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	if input == "" {
		input = "json"
		if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
			input = "yaml"
		}
	}
	if input != "json" && input != "yaml" && input != "yml" {
		return nil, errors.New("input format must be json or yaml")
	}

	codec, err := replacer.Lookup(input)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := codec.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s input: %w", input, err)
	}
	return doc, nil
}

func splitFlag(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func joinTags(tags []replacer.TypeTag) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}
