// Package templates provides the generated-file templates for the build
// bridge. Template data must be pre-sorted by the caller; the templates
// render their inputs in the order given.
package templates

// CMakeLists is the template for the glue CMake project descriptor that
// hands the host build's sources and flags to the SDK build.
const CMakeLists = `cmake_minimum_required(VERSION 3.20.0)

find_package(Zephyr REQUIRED HINTS $ENV{ZEPHYR_BASE})
project({{ .ProjectName }})

{{ if .BuildFlags -}}
zephyr_compile_options(
{{- range .BuildFlags }}
  {{ . }}
{{- end }}
)
{{ end -}}
{{ if .LinkFlags -}}
zephyr_link_libraries(
{{- range .LinkFlags }}
  {{ . }}
{{- end }}
)
{{ end -}}
target_sources(app PRIVATE
{{- range .SourceFiles }}
  {{ . }}
{{- end }}
)
`

// AppMain is the starter application source generated when the project has
// no sources of its own yet.
const AppMain = `#include <zephyr/kernel.h>

int main(void)
{
	printk("Hello from {{ .ProjectName }}\n");
	return 0;
}
`

// Names of the registered templates.
const (
	NameCMakeLists = "cmakelists"
	NameAppMain    = "appmain"
)

// All maps template names to their sources.
var All = map[string]string{
	NameCMakeLists: CMakeLists,
	NameAppMain:    AppMain,
}
