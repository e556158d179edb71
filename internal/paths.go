package internal

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// HostID identifies one of the supported desktop applications.
type HostID string

const (
	HostVSCode  HostID = "vscode"
	HostCursor  HostID = "cursor"
	HostIDEA    HostID = "idea"
	HostPyCharm HostID = "pycharm"
)

// StoreKind is the container shape a host persists chat state in.
type StoreKind int

const (
	// StoreTable is a state.vscdb SQLite file with an ItemTable.
	StoreTable StoreKind = iota
	// StoreAttributeMap is a JetBrains component XML file.
	StoreAttributeMap
)

// HostSpec describes where one host keeps its containers.
type HostSpec struct {
	ID   HostID
	Name string
	Kind StoreKind
	// appDir is the application directory name for table hosts ("Code",
	// "Cursor") or the product directory prefix for JetBrains hosts
	// ("IntelliJIdea", "PyCharm").
	appDir string
}

// Hosts lists the supported hosts in display order.
var Hosts = []HostSpec{
	{ID: HostVSCode, Name: "VS Code (Augment)", Kind: StoreTable, appDir: "Code"},
	{ID: HostCursor, Name: "Cursor (Augment)", Kind: StoreTable, appDir: "Cursor"},
	{ID: HostIDEA, Name: "IntelliJ IDEA (Augment)", Kind: StoreAttributeMap, appDir: "IntelliJIdea"},
	{ID: HostPyCharm, Name: "PyCharm (Augment)", Kind: StoreAttributeMap, appDir: "PyCharm"},
}

// HostByID resolves a host id string.
func HostByID(id string) (HostSpec, bool) {
	for _, spec := range Hosts {
		if spec.ID == HostID(id) {
			return spec, true
		}
	}
	return HostSpec{}, false
}

// Container is one embedded store instance belonging to a single
// workspace or project.
type Container struct {
	Host HostID
	// Path is the store file: state.vscdb or AugmentWebviewStateStore.xml.
	Path string
	// ID disambiguates identical conversation ids across containers: the
	// workspace hash for table hosts, the project name for the others.
	ID string
}

// Locator resolves per-OS default directories, applies user overrides, and
// lists candidate store containers per host.
type Locator struct {
	rt       *Runtime
	settings *Settings
	home     string
	goos     string
}

// NewLocator creates a Locator. Overrides come from the settings store.
func NewLocator(rt *Runtime, settings *Settings) *Locator {
	home, err := os.UserHomeDir()
	if err != nil {
		rt.Log.Warn("home directory unavailable", "error", err)
	}
	return &Locator{rt: rt, settings: settings, home: home, goos: runtime.GOOS}
}

// Containers lists the candidate containers for one host. Failures degrade
// to an empty list; they never stop the run.
func (l *Locator) Containers(spec HostSpec) []Container {
	switch spec.Kind {
	case StoreTable:
		return l.tableContainers(spec)
	default:
		return l.attributeMapContainers(spec)
	}
}

func (l *Locator) tableContainers(spec HostSpec) []Container {
	root := l.workspaceStorageRoot(spec)
	if root == "" {
		return nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		l.rt.Log.Debug("workspace storage unreadable", "host", spec.ID, "path", root)
		return nil
	}

	var containers []Container
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dbPath := filepath.Join(root, entry.Name(), "state.vscdb")
		if _, err := os.Stat(dbPath); err != nil {
			continue
		}
		containers = append(containers, Container{
			Host: spec.ID,
			Path: dbPath,
			ID:   entry.Name(),
		})
	}
	return containers
}

// workspaceStorageRoot resolves the workspaceStorage directory for a table
// host: the user override when it exists, the per-OS default otherwise.
func (l *Locator) workspaceStorageRoot(spec HostSpec) string {
	if override := l.settings.PathFor(spec.ID); override != "" {
		if info, err := os.Stat(override); err == nil && info.IsDir() {
			return override
		}
		l.rt.Log.Warn("configured path missing, using default", "host", spec.ID, "path", override)
	}
	if l.home == "" {
		return ""
	}

	var base string
	switch l.goos {
	case "darwin":
		base = filepath.Join(l.home, "Library", "Application Support", spec.appDir)
	case "windows":
		base = filepath.Join(l.home, "AppData", "Roaming", spec.appDir)
	default:
		base = filepath.Join(l.home, ".config", spec.appDir)
	}
	return filepath.Join(base, "User", "workspaceStorage")
}

func (l *Locator) attributeMapContainers(spec HostSpec) []Container {
	configDir := l.jetbrainsConfigDir(spec)
	if configDir == "" {
		return nil
	}

	var containers []Container
	for _, project := range l.recentProjects(configDir) {
		stateFile := filepath.Join(project, ".idea", "AugmentWebviewStateStore.xml")
		if _, err := os.Stat(stateFile); err != nil {
			continue
		}
		containers = append(containers, Container{
			Host: spec.ID,
			Path: stateFile,
			ID:   filepath.Base(project),
		})
	}
	return containers
}

// jetbrainsConfigDir picks the newest product config directory
// (e.g. IntelliJIdea2024.3) under the per-OS JetBrains root, unless an
// existing override points elsewhere.
func (l *Locator) jetbrainsConfigDir(spec HostSpec) string {
	if override := l.settings.PathFor(spec.ID); override != "" {
		if info, err := os.Stat(override); err == nil && info.IsDir() {
			return override
		}
		l.rt.Log.Warn("configured path missing, using default", "host", spec.ID, "path", override)
	}
	if l.home == "" {
		return ""
	}

	var root string
	switch l.goos {
	case "darwin":
		root = filepath.Join(l.home, "Library", "Application Support", "JetBrains")
	case "windows":
		root = filepath.Join(l.home, "AppData", "Roaming", "JetBrains")
	default:
		root = filepath.Join(l.home, ".config", "JetBrains")
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return ""
	}
	var versions []string
	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), spec.appDir) {
			versions = append(versions, entry.Name())
		}
	}
	if len(versions) == 0 {
		return ""
	}
	sort.Strings(versions)
	return filepath.Join(root, versions[len(versions)-1])
}

// recentProjects reads the product's recentProjects.xml and returns the
// project paths that still exist on disk.
func (l *Locator) recentProjects(configDir string) []string {
	path := filepath.Join(configDir, "options", "recentProjects.xml")
	data, err := os.ReadFile(path)
	if err != nil {
		l.rt.Log.Debug("no recent projects file", "path", path)
		return nil
	}

	var doc xmlProject
	if err := xml.Unmarshal(data, &doc); err != nil {
		l.rt.Log.Warn("unreadable recent projects file", "path", path, "error", err)
		return nil
	}

	var projects []string
	for _, component := range doc.Components {
		for _, option := range component.Options {
			if option.Name != "additionalInfo" {
				continue
			}
			for _, entry := range option.Entries {
				if entry.Key == "" || strings.Contains(entry.Key, "light-edit") {
					continue
				}
				project := l.expandPathVariables(entry.Key, configDir)
				if info, err := os.Stat(project); err == nil && info.IsDir() {
					projects = append(projects, project)
				}
			}
		}
	}
	return projects
}

// expandPathVariables substitutes the path variables JetBrains writes into
// recentProjects.xml.
func (l *Locator) expandPathVariables(path, configDir string) string {
	path = strings.ReplaceAll(path, "$USER_HOME$", l.home)
	path = strings.ReplaceAll(path, "$APPLICATION_CONFIG_DIR$", configDir)
	return filepath.Clean(path)
}
