package filter

import "github.com/google/uuid"

// AssignIDs fills in missing node ids across a filter tree so every
// condition and group can be addressed individually after a save. Existing
// ids are kept.
func AssignIDs(g *Group) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	assignNodeIDs(g.Conditions)
}

func assignNodeIDs(nodes []Node) {
	for i := range nodes {
		switch nodes[i].Kind {
		case KindCondition:
			if nodes[i].Condition != nil && nodes[i].Condition.ID == "" {
				nodes[i].Condition.ID = uuid.NewString()
			}
		case KindGroup:
			if nodes[i].Group != nil {
				AssignIDs(nodes[i].Group)
			}
		}
	}
}
