// Package testutil provides filesystem fixtures and assertions shared by
// dotsync's package tests.
//
// Helpers take a *testing.T and fail the test on any setup error, so test
// bodies stay focused on behavior:
//   - Home creates an isolated HOME with XDG directories pointed inside it
//   - CreateFile, CreateDir and CreateSymlink build source trees
//   - AssertFileContent, AssertSymlink and AssertNoFile check results
package testutil
