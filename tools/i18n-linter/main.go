// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks the locale files against the translation keys used in
// the Go sources. Keys missing from a secondary locale fail the run; keys the
// code never references are reported as orphans.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultLocalesDir = "internal/i18n/locales"
	primaryLocale     = "active.en.yaml"
)

// Location stores the file and line number of a found string.
type Location struct {
	Filepath string
	Line     int
}

// Report is the outcome of a lint pass.
type Report struct {
	Used         map[string]struct{}
	Primary      map[string]struct{}
	Orphaned     []string
	Missing      map[string][]string // locale file -> missing keys
	Untranslated map[string][]Location
}

// Failed reports whether the run should exit non-zero.
func (r Report) Failed() bool {
	for _, keys := range r.Missing {
		if len(keys) > 0 {
			return true
		}
	}
	return false
}

var (
	keyUseRe   = regexp.MustCompile(`i18n\.T\("([^"]+)"|"([a-z]+\.[a-z._]+)"`)
	callRe     = regexp.MustCompile(`([a-zA-Z0-9_]+\.)?([a-zA-Z0-9_]+)\("([^"]+)"`)
	keyShapeRe = regexp.MustCompile(`^[a-z_]+\.[a-z._]+$`)
	allCapsRe  = regexp.MustCompile(`^[A-Z_]+$`)
	formatRe   = regexp.MustCompile(`^[\s%.,:;()#\d\w-]*%[\s\w-]*$`)
)

// Calls whose literals are not user-facing text.
var ignoredCalls = map[string]struct{}{
	"Print": {}, "Println": {}, "Printf": {}, "Fatal": {}, "Fatalf": {},
	"WriteString": {}, "MustCompile": {}, "Getenv": {}, "Setenv": {},
	"Debug": {}, "Info": {}, "Warn": {}, "Error": {}, "New": {}, "Errorf": {},
	"Wrapf": {}, "Code": {}, "With": {}, "Join": {}, "Trim": {}, "HasPrefix": {},
	"SetDefault": {}, "GetString": {}, "GetBool": {}, "Lookup": {}, "String": {},
	"StringP": {}, "Bool": {}, "BoolP": {}, "Int": {}, "IntP": {}, "NewBinding": {},
	"WithKeys": {}, "WithHelp": {}, "Open": {}, "Column": {}, "Order": {},
}

var sqlPrefixes = []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE ", "ALTER ", "DROP ", "PRAGMA "}

func main() {
	root := flag.String("root", ".", "project root to scan")
	locales := flag.String("locales", defaultLocalesDir, "locale directory, relative to root")
	flag.Parse()

	report, err := lint(*root, filepath.Join(*root, *locales))
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	printReport(os.Stdout, report)
	if report.Failed() {
		os.Exit(1)
	}
}

// lint walks root for translation keys and compares them with every locale
// file in localesDir.
func lint(root, localesDir string) (Report, error) {
	used, err := findUsedKeys(root)
	if err != nil {
		return Report{}, fmt.Errorf("finding used keys: %w", err)
	}
	primary, err := loadKeysFromLocale(filepath.Join(localesDir, primaryLocale))
	if err != nil {
		return Report{}, fmt.Errorf("loading primary locale %s: %w", primaryLocale, err)
	}
	files, err := filepath.Glob(filepath.Join(localesDir, "*.yaml"))
	if err != nil {
		return Report{}, fmt.Errorf("finding locale files: %w", err)
	}

	r := Report{Used: used, Primary: primary, Missing: make(map[string][]string)}
	for key := range primary {
		if _, ok := used[key]; !ok {
			r.Orphaned = append(r.Orphaned, key)
		}
	}
	sort.Strings(r.Orphaned)

	for _, file := range files {
		if filepath.Base(file) == primaryLocale {
			continue
		}
		secondary, err := loadKeysFromLocale(file)
		if err != nil {
			return Report{}, fmt.Errorf("loading %s: %w", file, err)
		}
		missing := []string{}
		for key := range primary {
			if _, ok := secondary[key]; !ok {
				missing = append(missing, key)
			}
		}
		sort.Strings(missing)
		r.Missing[filepath.Base(file)] = missing
	}

	r.Untranslated, err = findUntranslatedStrings(root, primary)
	if err != nil {
		return Report{}, fmt.Errorf("finding untranslated strings: %w", err)
	}
	return r, nil
}

func printReport(w io.Writer, r Report) {
	fmt.Fprintf(w, "✅ Found %d unique translation keys used in source code.\n", len(r.Used))
	fmt.Fprintf(w, "✅ Loaded %d keys from primary locale (%s).\n\n", len(r.Primary), primaryLocale)

	fmt.Fprintln(w, "--- Orphaned keys (in primary locale but not used in code) ---")
	if len(r.Orphaned) == 0 {
		fmt.Fprintln(w, "  ✨ None found.")
	}
	for _, key := range r.Orphaned {
		fmt.Fprintf(w, "  - Orphaned: %s\n", key)
	}

	fmt.Fprintln(w, "\n--- Missing keys (in primary locale but not in others) ---")
	files := make([]string, 0, len(r.Missing))
	for f := range r.Missing {
		files = append(files, f)
	}
	sort.Strings(files)
	for _, f := range files {
		fmt.Fprintf(w, "Checking %s:\n", f)
		if len(r.Missing[f]) == 0 {
			fmt.Fprintln(w, "  ✨ All keys present.")
		}
		for _, key := range r.Missing[f] {
			fmt.Fprintf(w, "  - Missing: %s\n", key)
		}
	}

	fmt.Fprintln(w, "\n--- Potentially untranslated strings ---")
	literals := make([]string, 0, len(r.Untranslated))
	for l := range r.Untranslated {
		literals = append(literals, l)
	}
	sort.Strings(literals)
	if len(literals) == 0 {
		fmt.Fprintln(w, "  ✨ None found.")
	}
	for _, l := range literals {
		loc := r.Untranslated[l][0]
		fmt.Fprintf(w, "  - Potential: %q (found in %s:%d)\n", l, loc.Filepath, loc.Line)
	}

	fmt.Fprintln(w)
	switch {
	case r.Failed():
		fmt.Fprintln(w, "❌ Found issues that need to be addressed.")
	case len(r.Orphaned) > 0:
		fmt.Fprintln(w, "⚠️  Found orphaned keys. Please consider removing them.")
	default:
		fmt.Fprintln(w, "✅ All translation files are consistent!")
	}
}

// walkSources calls fn for every non-test Go file below root, skipping the
// tools tree and underscore-prefixed directories.
func walkSources(root string, fn func(path, content string) error) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			name := info.Name()
			if path != root && (name == "tools" || strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return fn(path, string(content))
	})
}

// findUsedKeys collects i18n.T("key") arguments and key-shaped literals
// such as the ids stored in menu tables.
func findUsedKeys(root string) (map[string]struct{}, error) {
	keys := make(map[string]struct{})
	err := walkSources(root, func(_, content string) error {
		for _, m := range keyUseRe.FindAllStringSubmatch(content, -1) {
			switch {
			case m[1] != "":
				keys[m[1]] = struct{}{}
			case m[2] != "":
				keys[m[2]] = struct{}{}
			}
		}
		return nil
	})
	return keys, err
}

// findUntranslatedStrings flags literal call arguments that look like prose.
func findUntranslatedStrings(root string, known map[string]struct{}) (map[string][]Location, error) {
	found := make(map[string][]Location)
	err := walkSources(root, func(path, content string) error {
		for i, line := range strings.Split(content, "\n") {
			for _, m := range callRe.FindAllStringSubmatch(line, -1) {
				if looksUntranslated(m[2], m[3], known) {
					found[m[3]] = append(found[m[3]], Location{Filepath: path, Line: i + 1})
				}
			}
		}
		return nil
	})
	return found, err
}

func looksUntranslated(call, literal string, known map[string]struct{}) bool {
	if _, ok := ignoredCalls[call]; ok {
		return false
	}
	if _, ok := known[literal]; ok {
		return false
	}
	if len(literal) < 4 || keyShapeRe.MatchString(literal) || allCapsRe.MatchString(literal) {
		return false
	}
	if strings.HasPrefix(literal, "2006-") || strings.HasPrefix(literal, "http") || strings.HasPrefix(literal, "file:") {
		return false
	}
	upper := strings.ToUpper(literal)
	for _, p := range sqlPrefixes {
		if strings.HasPrefix(upper, p) {
			return false
		}
	}
	if formatRe.MatchString(literal) && !strings.Contains(literal, " ") {
		return false
	}
	return true
}

// loadKeysFromLocale reads a YAML file and returns a flat set of its keys.
func loadKeysFromLocale(path string) (map[string]struct{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data map[string]interface{}
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}
	keys := make(map[string]struct{})
	flattenYAML("", data, keys)
	return keys, nil
}

func flattenYAML(prefix string, node interface{}, keys map[string]struct{}) {
	switch v := node.(type) {
	case map[string]interface{}:
		for k, val := range v {
			next := k
			if prefix != "" {
				next = prefix + "." + k
			}
			flattenYAML(next, val, keys)
		}
	case []interface{}:
		for i, val := range v {
			flattenYAML(fmt.Sprintf("%s[%d]", prefix, i), val, keys)
		}
	default:
		if prefix != "" {
			keys[prefix] = struct{}{}
		}
	}
}
