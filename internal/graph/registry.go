package graph

import "sort"

// Target kinds known to Kestrel. The set is closed: BUILD files declaring
// any other kind fail to parse.
const (
	KindLibrary              = "library"
	KindBinary               = "binary"
	KindTest                 = "test"
	KindProjectConfig        = "project_config"
	KindXcodeProjectConfig   = "xcode_project_config"
	KindXcodeWorkspaceConfig = "xcode_workspace_config"
)

// Attribute keys carried on TargetNodes by kind.
const (
	AttrTests         = "tests"          // test: identifiers under test
	AttrProjectRule   = "project_rule"   // project_config
	AttrRules         = "rules"          // xcode_project_config
	AttrSrcTarget     = "src_target"     // xcode_workspace_config
	AttrExtraTests    = "extra_tests"    // xcode_workspace_config
	AttrWorkspaceName = "workspace_name" // xcode_workspace_config
)

// KindInfo contains metadata about a target kind.
type KindInfo struct {
	Description string
	IsTest      bool // realizes to a TestRule
	allocate    func(*TargetNode) linkable
}

// Registry contains all known target kinds.
var Registry = map[string]KindInfo{
	KindLibrary: {
		Description: "a buildable library",
		allocate:    allocatePlain,
	},
	KindBinary: {
		Description: "a buildable executable",
		allocate:    allocatePlain,
	},
	KindTest: {
		Description: "a test suite exercising other targets",
		IsTest:      true,
		allocate:    allocateTest,
	},
	KindProjectConfig: {
		Description: "an IntelliJ module description",
		allocate:    allocateProjectConfig,
	},
	KindXcodeProjectConfig: {
		Description: "an Xcode project description",
		allocate:    allocateXcodeProjectConfig,
	},
	KindXcodeWorkspaceConfig: {
		Description: "an Xcode workspace description",
		allocate:    allocateXcodeWorkspaceConfig,
	},
}

// LookupKind retrieves kind metadata by name.
func LookupKind(kind string) (KindInfo, bool) {
	info, ok := Registry[kind]
	return info, ok
}

// Kinds returns all registered kind names, sorted.
func Kinds() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
