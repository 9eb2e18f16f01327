// Package schemafile loads modelkit schema descriptors from YAML documents,
// so record layouts can live next to configuration instead of Go code.
//
// A document declares schemas, their fields and their relations by name;
// cross-references are resolved after all schemas are parsed, so declaration
// order does not matter:
//
//	schemas:
//	  - name: student
//	    primary_key: id
//	    fields:
//	      - { name: id, type: integer }
//	      - { name: name, type: string, max_length: 100 }
//	      - { name: courses, relation: many, related: course }
//	  - name: course
//	    primary_key: id
//	    fields:
//	      - { name: id, type: integer }
//	      - { name: name, type: string }
//
// Supported field types: string, integer, number, boolean, datetime.
// Static defaults, choices, unique flags and unique_together groups map
// one-to-one onto the schema.Field and schema.Schema declarations.
package schemafile
