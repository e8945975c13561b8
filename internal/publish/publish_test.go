// SPDX-License-Identifier: MIT
package publish

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thatcatcamp/themery/internal/analytics"
	"github.com/thatcatcamp/themery/internal/db"
	"github.com/thatcatcamp/themery/internal/models"
	"github.com/thatcatcamp/themery/internal/themes"
)

type memTarget struct {
	mu    sync.Mutex
	files map[string]string
	types map[string]string
	fail  string
}

func newMemTarget() *memTarget {
	return &memTarget{files: map[string]string{}, types: map[string]string{}}
}

func (m *memTarget) Kind() string   { return "mem" }
func (m *memTarget) String() string { return "mem" }

func (m *memTarget) Put(ctx context.Context, name string, body []byte, contentType string) error {
	if name == m.fail {
		return errors.New("disk full")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = string(body)
	m.types[name] = contentType
	return nil
}

func TestRenderCoversStaticParams(t *testing.T) {
	files, err := Render(0.5)
	require.NoError(t, err)
	assert.Len(t, files, 40*2+8)

	paths := map[string]bool{}
	for _, f := range files {
		paths[f.Path] = true
	}
	assert.True(t, paths["themes/zinc/0.5/r/registry.json"])
	assert.True(t, paths["themes/violet/0.75/r/theme.json"])
	assert.True(t, paths["themes/red/r/theme.json"])
	assert.False(t, paths["themes/slate/0.5/r/registry.json"])
}

func TestPublisherRun(t *testing.T) {
	target := newMemTarget()
	p := &Publisher{Target: target, Concurrency: 4, DefaultRadius: 0.5}

	res, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 88, res.Files)
	assert.Positive(t, res.Bytes)

	got := target.files["themes/blue/1/r/registry.json"]
	assert.Equal(t, themes.RegistryItem(themes.GetTheme("blue"), 1), got)
	assert.NotEmpty(t, target.types["themes/blue/1/r/registry.json"])
}

func TestPublisherRunStopsOnError(t *testing.T) {
	conn, err := db.Open("sqlite", ":memory:")
	require.NoError(t, err)

	target := newMemTarget()
	target.fail = "themes/green/0.3/r/theme.json"
	p := &Publisher{Target: target, Concurrency: 1, Recorder: analytics.NewRecorder(conn, true)}

	res, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "themes/green/0.3/r/theme.json")
	assert.Less(t, res.Files, 88)

	var run models.PublishRun
	require.NoError(t, conn.First(&run).Error)
	assert.Equal(t, "mem", run.Target)
	assert.Contains(t, run.Error, "disk full")
}

func TestDirTarget(t *testing.T) {
	root := filepath.Join(t.TempDir(), "public")
	target, err := NewDirTarget(root)
	require.NoError(t, err)

	p := &Publisher{Target: target, DefaultRadius: 0.5}
	_, err = p.Run(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "themes", "rose", "0.3", "r", "registry.json"))
	require.NoError(t, err)
	assert.Equal(t, themes.RegistryItem(themes.GetTheme("rose"), 0.3), string(data))

	leftovers, err := filepath.Glob(filepath.Join(root, "themes", "rose", "0.3", "r", ".publish-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestDirTargetRejectsEscape(t *testing.T) {
	target, err := NewDirTarget(t.TempDir())
	require.NoError(t, err)

	err = target.Put(context.Background(), "../outside.json", []byte("{}"), "application/json")
	assert.Error(t, err)

	_, err = NewDirTarget("")
	assert.Error(t, err)
}

type fakeS3 struct {
	mu     sync.Mutex
	inputs []*s3.PutObjectInput
	bodies map[string]string
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs = append(f.inputs, in)
	if f.bodies == nil {
		f.bodies = map[string]string{}
	}
	f.bodies[aws.ToString(in.Key)] = string(body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3TargetPut(t *testing.T) {
	client := &fakeS3{}
	target := &S3Target{Client: client, Bucket: "themes-bucket", Prefix: "static", CacheControl: "public, max-age=60"}
	assert.Equal(t, "s3://themes-bucket/static", target.String())

	err := target.Put(context.Background(), "themes/zinc/0.5/r/registry.json", []byte(`{"a":1}`), "application/json")
	require.NoError(t, err)

	require.Len(t, client.inputs, 1)
	in := client.inputs[0]
	assert.Equal(t, "themes-bucket", aws.ToString(in.Bucket))
	assert.Equal(t, "static/themes/zinc/0.5/r/registry.json", aws.ToString(in.Key))
	assert.Equal(t, "application/json", aws.ToString(in.ContentType))
	assert.Equal(t, "public, max-age=60", aws.ToString(in.CacheControl))
	assert.Equal(t, int64(7), aws.ToInt64(in.ContentLength))
	assert.Equal(t, `{"a":1}`, client.bodies["static/themes/zinc/0.5/r/registry.json"])
}

func TestS3TargetWithoutPrefix(t *testing.T) {
	client := &fakeS3{}
	target := &S3Target{Client: client, Bucket: "b"}
	require.NoError(t, target.Put(context.Background(), "themes/red/r/theme.json", []byte("{}"), "application/json"))
	assert.Equal(t, "themes/red/r/theme.json", aws.ToString(client.inputs[0].Key))
	assert.Equal(t, "s3://b", target.String())
}

func TestNewS3TargetNeedsBucket(t *testing.T) {
	_, err := NewS3Target(context.Background(), S3Options{})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "s3_bucket"))
}

func TestSchedulerRunsAndStops(t *testing.T) {
	target := newMemTarget()
	s := NewScheduler(&Publisher{Target: target, DefaultRadius: 0.5}, time.Hour)

	done := s.Start(context.Background())
	require.Eventually(t, func() bool {
		target.mu.Lock()
		defer target.mu.Unlock()
		return len(target.files) == 88
	}, 5*time.Second, 10*time.Millisecond)

	s.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop within timeout")
	}
}

func TestNewS3TargetNeedsCredentials(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")
	_, err := NewS3Target(context.Background(), S3Options{Bucket: "b"})
	require.Error(t, err)

	t.Setenv("AWS_ACCESS_KEY_ID", "AKIDEXAMPLE")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	target, err := NewS3Target(context.Background(), S3Options{Bucket: "b", Prefix: "/static/", Region: "us-east-1", Endpoint: "http://localhost:9000"})
	require.NoError(t, err)
	assert.Equal(t, "static", target.Prefix)
	assert.Equal(t, "s3://b/static", target.String())
}
