// Package terrascan normalizes raw Terrascan JSON output into a fixed-shape
// findings structure.
//
// Extraction is total over any JSON object: a payload missing the violations
// list or the scan_summary block still yields a valid [Findings] value with
// empty or zero fields, and violation order is preserved exactly as the
// scanner emitted it. Only a payload that is not an object at all is rejected.
//
// Use [Extract] on the decoded "results" value of a scan payload.
package terrascan
