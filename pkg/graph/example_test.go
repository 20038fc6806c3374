package graph_test

import (
	"fmt"

	"github.com/USQVE/bleprint/pkg/graph"
)

func Example() {
	g := graph.New()

	begin := graph.NewNode("BeginPlay", graph.CategoryArrow)
	then := begin.AddOutput("then", graph.Exec)

	branch := graph.NewNode("Branch", graph.CategoryArrow)
	exec := branch.AddInput("execute", graph.Exec)
	cond := branch.AddInput("condition", graph.Boolean)

	g.AddNode(begin)
	g.AddNode(branch)

	if _, err := g.Connect(begin.ID, then.ID, branch.ID, exec.ID); err != nil {
		fmt.Println(err)
	}
	if _, err := g.Connect(begin.ID, then.ID, branch.ID, cond.ID); err != nil {
		fmt.Println("rejected:", err)
	}

	st := g.Statistics()
	fmt.Println("nodes:", st.NodeCount, "connections:", st.ConnectionCount)
	// Output:
	// rejected: incompatible pin types: Exec -> Boolean
	// nodes: 2 connections: 1
}
