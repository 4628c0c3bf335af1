// Command docgen renders API reference pages for the public packages.
// It runs gomarkdoc over each package and writes Docusaurus-ready
// markdown under docs/api/.
package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

type docPackage struct {
	Name     string
	Path     string
	Position int
}

// Public packages, in sidebar order.
var docPackages = []docPackage{
	{Name: "carousel", Path: "pkg/carousel", Position: 1},
	{Name: "core", Path: "pkg/core", Position: 2},
	{Name: "widgets", Path: "pkg/widgets", Position: 3},
	{Name: "layout", Path: "pkg/layout", Position: 4},
	{Name: "graphics", Path: "pkg/graphics", Position: 5},
	{Name: "animation", Path: "pkg/animation", Position: 6},
	{Name: "gestures", Path: "pkg/gestures", Position: 7},
	{Name: "platform", Path: "pkg/platform", Position: 8},
	{Name: "errors", Path: "pkg/errors", Position: 9},
	{Name: "testing", Path: "pkg/testing", Position: 10},
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "docgen:", err)
		os.Exit(1)
	}
}

func run() error {
	root, err := findRepoRoot()
	if err != nil {
		return err
	}

	if err := ensureGomarkdoc(); err != nil {
		return fmt.Errorf("installing gomarkdoc: %w", err)
	}

	apiDir := filepath.Join(root, "docs", "api")
	if err := os.MkdirAll(apiDir, 0755); err != nil {
		return err
	}
	if err := writeCategoryFile(apiDir); err != nil {
		return err
	}

	for _, pkg := range docPackages {
		if _, err := os.Stat(filepath.Join(root, pkg.Path)); os.IsNotExist(err) {
			fmt.Printf("skipping %s (not found)\n", pkg.Name)
			continue
		}
		fmt.Printf("generating %s...\n", pkg.Name)
		if err := generatePackageDocs(root, pkg, apiDir); err != nil {
			return fmt.Errorf("package %s: %w", pkg.Name, err)
		}
	}

	fmt.Println("done; output in docs/api/")
	return nil
}

// findRepoRoot walks up from the working directory to the module root.
func findRepoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no go.mod above %s", dir)
		}
		dir = parent
	}
}

func ensureGomarkdoc() error {
	if _, err := exec.LookPath("gomarkdoc"); err == nil {
		return nil
	}
	fmt.Println("installing gomarkdoc...")
	cmd := exec.Command("go", "install", "github.com/princjef/gomarkdoc/cmd/gomarkdoc@latest")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func writeCategoryFile(apiDir string) error {
	content := `{
  "label": "API Reference",
  "position": 100,
  "link": {
    "type": "generated-index",
    "description": "API documentation generated from Go source code."
  }
}
`
	return os.WriteFile(filepath.Join(apiDir, "_category_.json"), []byte(content), 0644)
}

func generatePackageDocs(root string, pkg docPackage, apiDir string) error {
	cmd := exec.Command("gomarkdoc", "./"+pkg.Path)
	cmd.Dir = root

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// Some packages trip gomarkdoc on build constraints; warn and move on.
		fmt.Printf("  warning: gomarkdoc failed for %s, skipping\n", pkg.Name)
		return nil
	}
	content := stdout.String()
	if content == "" {
		fmt.Printf("  warning: empty output for %s\n", pkg.Name)
		return nil
	}

	frontmatter := fmt.Sprintf("---\nid: %s\ntitle: %s\nsidebar_position: %d\n---\n\n",
		pkg.Name, titleCase(pkg.Name), pkg.Position)
	page := frontmatter + rewriteMarkdown(content)

	return os.WriteFile(filepath.Join(apiDir, pkg.Name+".md"), []byte(page), 0644)
}

func titleCase(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// rewriteMarkdown strips the parts of gomarkdoc output that clash with
// the site layout: the top-level header, the Index section, import-path
// code fences, and the details/summary wrappers around examples.
func rewriteMarkdown(content string) string {
	lines := strings.Split(content, "\n")
	var result []string
	skipFence := false
	inIndex := false

	for i, line := range lines {
		if i == 0 && strings.HasPrefix(line, "# ") {
			continue
		}

		if line == "## Index" {
			inIndex = true
			continue
		}
		if inIndex {
			if !strings.HasPrefix(line, "## ") {
				continue
			}
			inIndex = false
		}

		if strings.HasPrefix(line, "```go") && i+1 < len(lines) && strings.Contains(lines[i+1], "import") {
			skipFence = true
		}
		if skipFence {
			if line == "```" {
				skipFence = false
			}
			continue
		}

		if strings.HasPrefix(line, "<details><summary>") && strings.HasSuffix(line, "</summary>") {
			summary := strings.TrimSuffix(strings.TrimPrefix(line, "<details><summary>"), "</summary>")
			result = append(result, "", fmt.Sprintf("**%s:**", summary), "")
			continue
		}
		if line == "</details>" || line == "<p>" || line == "</p>" {
			continue
		}

		result = append(result, line)
	}

	return strings.Join(result, "\n")
}
