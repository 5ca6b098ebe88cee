package picture

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

func TestFileName(t *testing.T) {
	cases := map[string]string{
		"avatar.PNG":      "7.png",
		"photo.final.jpg": "7.jpg",
		"noext":           "7.",
	}
	for in, want := range cases {
		if got := FileName(7, in); got != want {
			t.Fatalf("FileName(7, %q) = %q, want %q", in, got, want)
		}
	}
}

func TestLocalSaveCreatesDirAndServes(t *testing.T) {
	dir := t.TempDir() + "/nested/pictures"
	st := NewLocal(dir)
	data := bytes.Repeat([]byte{0xFF}, 2048)

	if err := st.Save(context.Background(), "3.png", data, "image/png"); err != nil {
		t.Fatalf("save: %v", err)
	}

	srv := httptest.NewServer(http.StripPrefix("/pictures", Handler(st)))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/pictures/3.png")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	if res.StatusCode != http.StatusOK || !bytes.Equal(body, data) {
		t.Fatalf("unexpected response: %d, %d bytes", res.StatusCode, len(body))
	}
	if ct := res.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("unexpected content type %q", ct)
	}

	missing, err := http.Get(srv.URL + "/pictures/404.png")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", missing.StatusCode)
	}
}

func TestLocalOpenDoesNotEscapeDir(t *testing.T) {
	st := NewLocal(t.TempDir())
	if _, _, err := st.Open(context.Background(), "../../etc/passwd"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

type fakeS3 struct {
	objects map[string][]byte
	types   map[string]string
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = b
	f.types[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	b, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{
		Body:        io.NopCloser(bytes.NewReader(b)),
		ContentType: aws.String(f.types[aws.ToString(in.Key)]),
	}, nil
}

func TestS3SaveAndOpen(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
	st := &S3{client: fake, bucket: "nexus"}
	ctx := context.Background()

	if err := st.Save(ctx, "9.jpg", []byte("jpeg-bytes"), "image/jpeg"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, ok := fake.objects["pictures/9.jpg"]; !ok {
		t.Fatalf("expected object under pictures/ prefix, got %v", fake.objects)
	}

	body, ct, err := st.Open(ctx, "9.jpg")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer body.Close()
	got, _ := io.ReadAll(body)
	if string(got) != "jpeg-bytes" || ct != "image/jpeg" {
		t.Fatalf("unexpected object %q (%s)", got, ct)
	}

	if _, _, err := st.Open(ctx, "missing.jpg"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
