package search

import "github.com/forkful/menusearch/core"

// SearchMonitor provides hooks to observe the retrieval process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(requestID string, req core.RetrievalRequest)
	AfterSemanticRetrieval(results []core.Result)
	AfterLexicalRetrieval(results []core.Result)
	SourceFailed(source string, err error)
	AfterFusion(results []core.Result)
	AfterFilter(results []core.Result)
	Finish(results []core.Result)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ core.RetrievalRequest) {}
func (n *noopMonitor) AfterSemanticRetrieval(_ []core.Result)  {}
func (n *noopMonitor) AfterLexicalRetrieval(_ []core.Result)   {}
func (n *noopMonitor) SourceFailed(_ string, _ error)          {}
func (n *noopMonitor) AfterFusion(_ []core.Result)             {}
func (n *noopMonitor) AfterFilter(_ []core.Result)             {}
func (n *noopMonitor) Finish(_ []core.Result)                  {}
