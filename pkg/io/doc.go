// Package io provides JSON import and export for pack trees.
//
// # JSON Format
//
// A tree is a single nested object. Only "name" is required:
//
//	{
//	  "name": "solar system",
//	  "type": "zoomable",
//	  "children": [
//	    {"name": "mercury", "ordinal": 0},
//	    {"name": "jupiter", "url": "moons/jupiter.json"},
//	    {"name": "+", "type": "static,createNewNode"}
//	  ]
//	}
//
// # Node Fields
//
//   - name: Display label, also the node's identity within a level
//   - type: Comma separated tags (zoomable, static, createNewNode)
//   - url: Expansion payload loaded when the node is activated
//   - ordinal: Sort position among siblings (defaults to the array index)
//   - size: Weight, kept for round-trips but ignored by the navigator
//   - children: Nested nodes
//
// # Import
//
// Use [ImportJSON] to read a tree from a file path, or [ReadJSON] to read
// from any io.Reader:
//
//	root, err := io.ImportJSON("solar.json")
//
// Both functions validate the tree and prepare it (parent pointers, depths,
// IDs and ordinals) so it can be handed straight to the navigator.
//
// # Export
//
// Use [ExportJSON] or [WriteJSON]. Layout positions and IDs are not written;
// import, edit, export and re-import gives the same tree.
package io
