package analytics

// Group separates data-structure categories from algorithm categories.
type Group string

const (
	GroupDataStructures Group = "data-structures"
	GroupAlgorithms     Group = "algorithms"
)

// GroupDisplayName returns a human-readable name for a group.
func GroupDisplayName(g Group) string {
	switch g {
	case GroupDataStructures:
		return "Data Structures"
	case GroupAlgorithms:
		return "Algorithms"
	default:
		return string(g)
	}
}

// Category is a named set of topic tags. A problem belongs to the category
// when any of its tags is in Tags.
type Category struct {
	Name string
	Tags []string
}

// Matches reports whether any of tags belongs to c.
func (c Category) Matches(tags []string) bool {
	for _, t := range tags {
		for _, ct := range c.Tags {
			if t == ct {
				return true
			}
		}
	}
	return false
}

// Taxonomy is the fixed set of categories scored by analytics.
type Taxonomy struct {
	DataStructures []Category
	Algorithms     []Category
}

// Len returns the number of categories across both groups.
func (t Taxonomy) Len() int {
	return len(t.DataStructures) + len(t.Algorithms)
}

// DefaultTaxonomy returns the built-in LeetCode tag mapping.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		DataStructures: []Category{
			{Name: "Array & String", Tags: []string{"Array", "String"}},
			{Name: "Linked List", Tags: []string{"Linked List"}},
			{Name: "Hash Table", Tags: []string{"Hash Table"}},
			{Name: "Tree", Tags: []string{"Tree", "Binary Tree", "Binary Search Tree"}},
			{Name: "Graph", Tags: []string{"Graph", "Breadth-First Search", "Depth-First Search", "Topological Sort", "Shortest Path"}},
			{Name: "Heap / PQ", Tags: []string{"Heap (Priority Queue)"}},
			{Name: "Stack / Queue", Tags: []string{"Stack", "Queue", "Monotonic Stack", "Monotonic Queue"}},
			{Name: "Trie", Tags: []string{"Trie"}},
		},
		Algorithms: []Category{
			{Name: "Dynamic Programming", Tags: []string{"Dynamic Programming"}},
			{Name: "Binary Search", Tags: []string{"Binary Search"}},
			{Name: "Two Pointers", Tags: []string{"Two Pointers"}},
			{Name: "Sliding Window", Tags: []string{"Sliding Window"}},
			{Name: "Backtracking", Tags: []string{"Backtracking"}},
			{Name: "Greedy", Tags: []string{"Greedy"}},
			{Name: "Bit Manipulation", Tags: []string{"Bit Manipulation"}},
			{Name: "Union Find", Tags: []string{"Union Find"}},
		},
	}
}
