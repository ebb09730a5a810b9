package catalog

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

func TestEncodeText(t *testing.T) {
	c := Catalog{Categories: []Category{
		{Title: "Tools", Packages: []string{"pyinstaller", "pipreqs"}, Checked: []string{"pipreqs"}},
	}}
	var buf bytes.Buffer
	if err := Encode(&buf, c, ""); err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	want := "Tools\n  [ ] pyinstaller\n  [x] pipreqs\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestEncodeTOMLDecodesAsConfigCategories(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, Default(), "TOML"); err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if !strings.Contains(buf.String(), "[[categories]]") {
		t.Fatalf("expected [[categories]] tables, got:\n%s", buf.String())
	}

	var decoded Catalog
	if err := toml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode toml: %v", err)
	}
	if !reflect.DeepEqual(decoded, Default()) {
		t.Fatalf("decoded catalog differs: %#v", decoded)
	}
}

func TestEncodeYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, Default(), FormatYAML); err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if !strings.Contains(buf.String(), "title: Math/Data Science") {
		t.Fatalf("unexpected yaml:\n%s", buf.String())
	}

	var decoded Catalog
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if !reflect.DeepEqual(decoded, Default()) {
		t.Fatalf("decoded catalog differs: %#v", decoded)
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	err := Encode(&bytes.Buffer{}, Default(), "json")
	if err == nil || !strings.Contains(err.Error(), `unknown catalog format "json"`) {
		t.Fatalf("expected unknown format error, got %v", err)
	}
}
