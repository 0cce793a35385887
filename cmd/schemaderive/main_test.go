package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jhump/protoreflect/v2/protobuilder"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
)

func writeDescriptorSet(t *testing.T) string {
	t.Helper()

	fb := protobuilder.NewFile("app/model.proto")
	fb.SetPackageName("app")
	fb.SetSyntax(protoreflect.Proto3)

	job := protobuilder.NewMessage("Job")
	name := protobuilder.NewField("name", protobuilder.FieldTypeScalar(protoreflect.StringKind))
	name.SetNumber(1)
	job.AddField(name)
	id := protobuilder.NewField("id", protobuilder.FieldTypeScalar(protoreflect.StringKind))
	id.SetNumber(2)
	job.AddField(id)
	fb.AddMessage(job)

	user := protobuilder.NewMessage("User")
	login := protobuilder.NewField("login", protobuilder.FieldTypeScalar(protoreflect.StringKind))
	login.SetNumber(1)
	user.AddField(login)
	fb.AddMessage(user)

	fd, err := fb.Build()
	require.NoError(t, err)

	set := &descriptorpb.FileDescriptorSet{
		File: []*descriptorpb.FileDescriptorProto{protodesc.ToFileDescriptorProto(fd)},
	}
	data, err := proto.Marshal(set)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "model.binpb")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	old := os.Stdout
	defer func() { os.Stdout = old }()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	done := make(chan struct{})
	var buf bytes.Buffer
	go func() { io.Copy(&buf, r); close(done) }()

	runErr := fn()
	w.Close()
	<-done
	return buf.String(), runErr
}

func TestHelp(t *testing.T) {
	out, err := captureStdout(t, func() error {
		return run([]string{"help", "derive"})
	})
	require.NoError(t, err)
	require.Contains(t, out, "derive FLAGS")
}

func TestUnknownCommand(t *testing.T) {
	err := run([]string{"frobnicate"})
	require.Error(t, err)
}

func TestDeriveRequiresFlags(t *testing.T) {
	err := run([]string{"derive"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "required")
}

func TestDerive(t *testing.T) {
	descriptor := writeDescriptorSet(t)
	out := filepath.Join(t.TempDir(), "schema.graphql")

	err := run([]string{
		"derive",
		"-descriptor", descriptor,
		"-item-root", "app.Job",
		"-user-root", "app.User",
		"-out", out,
	})
	require.NoError(t, err)

	sdl, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(sdl), "type Job {")
	require.Contains(t, string(sdl), "allItems(offset: Int = 0, limit: Int = 100, type: String, id: ID): [Job]")
	require.Contains(t, string(sdl), "query: QueryType")
}

func TestDeriveUnknownRoot(t *testing.T) {
	descriptor := writeDescriptorSet(t)

	err := run([]string{
		"derive",
		"-descriptor", descriptor,
		"-item-root", "app.Missing",
		"-user-root", "app.User",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "app.Missing")
}

func TestClasses(t *testing.T) {
	descriptor := writeDescriptorSet(t)

	out, err := captureStdout(t, func() error {
		return run([]string{"classes", "-descriptor", descriptor})
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "app.Job\tJob", lines[0])
	require.Equal(t, "app.User\tUser", lines[1])
}
