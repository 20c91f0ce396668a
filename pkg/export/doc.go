// Package export encodes point clouds for downstream tools.
//
// # Formats
//
//   - json: a document with the run configuration, summary statistics and
//     every point as {"i", "p", "cd", "f"}, in iteration order
//   - ply: ASCII PLY 1.0 with double positions, float RGB colors and an int
//     "f" property carrying the selector; loads directly in Houdini, Blender
//     and MeshLab
//   - csv: one row per point with header index,x,y,z,r,g,b,selector
//
// Point order is always iteration order, since it encodes the chain.
//
// # Usage
//
//	data, err := export.Render(c, export.FormatPLY, export.WithConfig(cfg))
//
// Or stream directly:
//
//	err := export.Encode(w, c, export.FormatCSV)
package export
