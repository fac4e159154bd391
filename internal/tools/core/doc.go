// Package core provides the workspace file tools.
//
// These tools wrap the managed code and test directories so any workflow
// role can read and write files without touching paths outside the
// workspace.
//
// Tools:
//   - write_test_file: Write a file into the test directory
//   - write_code_file: Write a file into the code directory
//   - read_file: Read a file from either directory
package core
