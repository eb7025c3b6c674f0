// Package paths provides centralized path handling for ordena.
//
// It covers two concerns:
//
//   - Run paths: the source root being organized and the category /
//     subcategory directories created under it.
//   - Application paths: reports, configuration and state directories,
//     following the XDG Base Directory specification.
//
// It also hosts the collision-free destination Resolver used when moving
// files.
//
// # Environment Variables
//
//   - ORDENA_CONFIG_DIR: Override XDG config directory (default: $XDG_CONFIG_HOME/ordena)
//   - ORDENA_STATE_DIR: Override XDG state directory (default: $XDG_STATE_HOME/ordena)
//
// # Usage
//
//	p, err := paths.New("~/Downloads", "logs")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	route := types.Route{Category: "Documentos", Subcategory: "PDFs"}
//	dir := p.LocationDir(route)          // /home/user/Downloads/Documentos/PDFs
//	reports := p.ReportsDir()            // /current/dir/logs
package paths
