package template

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

func TestRendererRender(t *testing.T) {
	t.Run("successful_render", func(t *testing.T) {
		fs := fstest.MapFS{
			"stub.tmpl": &fstest.MapFile{
				Data: []byte("import withNuxt from '{{.ImportPath}}'\n"),
			},
		}
		r := NewRenderer(fs)

		result, err := r.Render("stub.tmpl", RootConfigContext{ImportPath: "./.nuxt/eslint.config.mjs"})
		if err != nil {
			t.Fatalf("Render error: %v", err)
		}

		expected := "import withNuxt from './.nuxt/eslint.config.mjs'\n"
		if string(result) != expected {
			t.Errorf("Render result = %q, want %q", string(result), expected)
		}
	})

	t.Run("missing_key_strict_mode", func(t *testing.T) {
		fs := fstest.MapFS{
			"test.tmpl": &fstest.MapFile{
				Data: []byte("{{.Imports}} {{.Options}}"),
			},
		}
		r := NewRenderer(fs)

		_, err := r.Render("test.tmpl", map[string]string{"Imports": "x"})
		if err == nil {
			t.Fatal("expected error for missing key")
		}
		if !errors.Is(err, ErrMissingTemplateKey) {
			t.Errorf("expected ErrMissingTemplateKey, got: %v", err)
		}
	})

	t.Run("nonexistent_template", func(t *testing.T) {
		r := NewRenderer(fstest.MapFS{})

		_, err := r.Render("nonexistent.tmpl", nil)
		if !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("expected ErrTemplateNotFound, got: %v", err)
		}
	})

	t.Run("parse_error", func(t *testing.T) {
		fs := fstest.MapFS{
			"broken.tmpl": &fstest.MapFile{Data: []byte("{{ if }")},
		}
		r := NewRenderer(fs)

		if _, err := r.Render("broken.tmpl", nil); err == nil {
			t.Fatal("expected parse error")
		}
	})

	t.Run("sprig_join", func(t *testing.T) {
		fs := fstest.MapFS{
			"list.tmpl": &fstest.MapFile{
				Data: []byte(`{{ join ",\n\n" .Configs }}`),
			},
		}
		r := NewRenderer(fs)

		result, err := r.Render("list.tmpl", ConfigContext{Configs: []string{"a", "b"}})
		if err != nil {
			t.Fatalf("Render error: %v", err)
		}
		if string(result) != "a,\n\nb" {
			t.Errorf("result = %q", string(result))
		}
	})

	t.Run("template_with_range", func(t *testing.T) {
		fs := fstest.MapFS{
			"list.tmpl": &fstest.MapFile{
				Data: []byte("{{range .Declarations}}- {{.}}\n{{end}}"),
			},
		}
		r := NewRenderer(fs)

		result, err := r.Render("list.tmpl", DeclarationsContext{Declarations: []string{"alpha", "beta"}})
		if err != nil {
			t.Fatalf("Render error: %v", err)
		}
		if string(result) != "- alpha\n- beta\n" {
			t.Errorf("result = %q", string(result))
		}
	})

	t.Run("js_sources_pass_through_unescaped", func(t *testing.T) {
		fs := fstest.MapFS{
			"js.tmpl": &fstest.MapFile{
				Data: []byte("{{.Imports}}"),
			},
		}
		r := NewRenderer(fs)

		src := "const a = `${x}` && b < c"
		result, err := r.Render("js.tmpl", ConfigContext{Imports: src})
		if err != nil {
			t.Fatalf("Render error: %v", err)
		}
		if string(result) != src {
			t.Errorf("result = %q, want %q", string(result), src)
		}
	})
}

func TestEmbeddedTemplates(t *testing.T) {
	r := NewEmbeddedRenderer()

	t.Run("root_stub", func(t *testing.T) {
		out, err := r.Render(RootConfigTemplate, RootConfigContext{ImportPath: "./.nuxt/eslint.config.mjs"})
		if err != nil {
			t.Fatalf("Render error: %v", err)
		}
		want := "// @ts-check\n" +
			"import withNuxt from './.nuxt/eslint.config.mjs'\n" +
			"\n" +
			"export default withNuxt(\n" +
			"  // Your custom configs here\n" +
			")\n"
		if string(out) != want {
			t.Errorf("root stub = %q, want %q", string(out), want)
		}
	})

	t.Run("type_stub_has_no_placeholders", func(t *testing.T) {
		out, err := r.Render(GeneratedTypesTemplate, nil)
		if err != nil {
			t.Fatalf("Render error: %v", err)
		}
		if !strings.HasSuffix(string(out), "export { withNuxt, defineFlatConfigs, configs, options }") {
			t.Errorf("unexpected type stub tail: %q", string(out))
		}
	})

	t.Run("declarations", func(t *testing.T) {
		out, err := r.Render(DeclarationsTemplate, DeclarationsContext{
			Declarations: []string{`/// <reference path="./eslint-typegen.d.ts" />`},
		})
		if err != nil {
			t.Fatalf("Render error: %v", err)
		}
		if !strings.Contains(string(out), `/// <reference path="./eslint-typegen.d.ts" />`+"\n") {
			t.Errorf("declaration missing: %q", string(out))
		}
	})
}

func TestJsonEscapeTemplateFunc(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unix_path_unchanged", "/proj/node_modules/pkg", "/proj/node_modules/pkg"},
		{"windows_path_backslashes_escaped", `C:\proj\pkg`, `C:\\proj\\pkg`},
		{"double_quotes_escaped", `say "hi"`, `say \"hi\"`},
		{"tab_and_newline_escaped", "a\tb\nc", `a\tb\nc`},
		{"empty_string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn := templateFuncMap["jsonEscape"].(func(string) string)
			if got := fn(tt.input); got != tt.want {
				t.Errorf("jsonEscape(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPosixPathTemplateFunc(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"windows_path_converted", `C:\proj\.nuxt`, "C:/proj/.nuxt"},
		{"unix_path_unchanged", "/proj/.nuxt", "/proj/.nuxt"},
		{"mixed_separators", `C:\proj/.nuxt\x`, "C:/proj/.nuxt/x"},
		{"empty_string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn := templateFuncMap["posixPath"].(func(string) string)
			if got := fn(tt.input); got != tt.want {
				t.Errorf("posixPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
