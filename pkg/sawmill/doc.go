// Package sawmill provides a build-log classification and embedding engine
// backed by a library of regular-expression patterns.
//
// Quick start:
//
//	s, err := sawmill.New(sawmill.WithDatabase("data/sawmill.db"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	m, ok := s.Classify("gcc: error: unrecognized option '-fplugin'")
//	if ok {
//	    fmt.Println(m.Utility, m.IsError) // gcc true
//	}
//
//	emb := s.Embed(logText)
//	fmt.Println(emb.Vector) // one error count per utility, alphabetical
//
// A Sawmill instance holds an immutable snapshot of the pattern library.
// After adding patterns, call Reload to make them visible to classification
// and embedding. See the README for full documentation.
package sawmill
