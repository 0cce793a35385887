package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"google.golang.org/protobuf/proto"

	"github.com/fqueiruga/graphql-server-plugin/internal/eventbus"
	"github.com/fqueiruga/graphql-server-plugin/internal/graphschema"
	"github.com/fqueiruga/graphql-server-plugin/internal/host"
	"github.com/fqueiruga/graphql-server-plugin/internal/meta"
	"github.com/fqueiruga/graphql-server-plugin/internal/meta/protometa"
	"github.com/fqueiruga/graphql-server-plugin/internal/otel"
	"github.com/fqueiruga/graphql-server-plugin/internal/schemagen"
)

const rootUsage = `schemaderive — derive a GraphQL schema from a host class graph

USAGE:
  schemaderive <command> [flags]

COMMANDS:
  derive           Derive the schema from a protobuf descriptor set
  classes          List the classes a descriptor set contributes
  help             Show help for any command
`

const deriveUsage = `derive FLAGS:
  -descriptor <file>     Serialized FileDescriptorSet, e.g. out of protoc
                         --descriptor_set_out (required)
  -item-root <name>      Full message name of the item root class (required)
  -user-root <name>      Full message name of the user root class (required)
  -out <file>            Write the schema text to file (default: stdout)
  -otel.endpoint <addr>  OTLP collector endpoint
  -otel.service <name>   OpenTelemetry service name (default: schemaderive)
`

const classesUsage = `classes FLAGS:
  -descriptor <file>     Serialized FileDescriptorSet (required)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("schemaderive", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer)) // silence automatic output
	if err := global.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := remaining[0]
	cmdArgs := remaining[1:]
	switch cmd {
	case "derive":
		return cmdDerive(cmdArgs)
	case "classes":
		return cmdClasses(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "derive":
		fmt.Print(deriveUsage)
	case "classes":
		fmt.Print(classesUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

func cmdDerive(args []string) error {
	descriptorFile := ""
	itemRoot := ""
	userRoot := ""
	outFile := ""
	otelEndpoint := ""
	otelService := "schemaderive"

	fs := flag.NewFlagSet("derive", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&descriptorFile, "descriptor", descriptorFile, "Serialized FileDescriptorSet")
	fs.StringVar(&itemRoot, "item-root", itemRoot, "Full message name of the item root class")
	fs.StringVar(&userRoot, "user-root", userRoot, "Full message name of the user root class")
	fs.StringVar(&outFile, "out", outFile, "Write the schema text to file")
	fs.StringVar(&otelEndpoint, "otel.endpoint", otelEndpoint, "OTLP collector endpoint")
	fs.StringVar(&otelService, "otel.service", otelService, "OpenTelemetry service name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, deriveUsage)
		return err
	}
	if descriptorFile == "" || itemRoot == "" || userRoot == "" {
		fmt.Fprint(os.Stderr, deriveUsage)
		return fmt.Errorf("-descriptor, -item-root and -user-root are required")
	}

	universe, err := loadUniverse(descriptorFile)
	if err != nil {
		return err
	}
	item, ok := universe.Message(itemRoot)
	if !ok {
		return fmt.Errorf("unknown item root message %q", itemRoot)
	}
	user, ok := universe.Message(userRoot)
	if !ok {
		return fmt.Errorf("unknown user root message %q", userRoot)
	}

	eventbus.Use(eventbus.New())
	shutdown, err := otel.Setup(otelEndpoint, otelService)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	mem := &host.Memory{Classify: classifier(universe)}
	ex, err := graphschema.Build(universe, host.Static(mem), host.AllowAll, schemagen.Config{
		ItemRoot: item,
		UserRoot: user,
	})
	if err != nil {
		return fmt.Errorf("derive schema: %w", err)
	}

	if outFile == "" {
		fmt.Print(ex.SDL)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(ex.SDL), 0o644); err != nil {
		return fmt.Errorf("write schema: %w", err)
	}
	return nil
}

func cmdClasses(args []string) error {
	descriptorFile := ""

	fs := flag.NewFlagSet("classes", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&descriptorFile, "descriptor", descriptorFile, "Serialized FileDescriptorSet")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, classesUsage)
		return err
	}
	if descriptorFile == "" {
		fmt.Fprint(os.Stderr, classesUsage)
		return fmt.Errorf("-descriptor is required")
	}

	universe, err := loadUniverse(descriptorFile)
	if err != nil {
		return err
	}
	for _, d := range universe.Messages() {
		fmt.Printf("%s\t%s\n", d.Name(), schemagen.SchemaName(d.SimpleName()))
	}
	return nil
}

func loadUniverse(descriptorFile string) (*protometa.Universe, error) {
	data, err := os.ReadFile(descriptorFile)
	if err != nil {
		return nil, fmt.Errorf("read descriptor set: %w", err)
	}
	universe, err := protometa.FromDescriptorSet(data)
	if err != nil {
		return nil, err
	}
	return universe, nil
}

// classifier resolves live protobuf messages back to their class in u.
func classifier(u *protometa.Universe) func(obj any) meta.Descriptor {
	return func(obj any) meta.Descriptor {
		pm, ok := obj.(proto.Message)
		if !ok {
			return nil
		}
		d, ok := u.Lookup(string(pm.ProtoReflect().Descriptor().FullName()))
		if !ok {
			return nil
		}
		return d
	}
}
