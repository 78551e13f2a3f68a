// Copyright (c) 2026 Mozaik Media d.o.o. <redakcija@mozaik.hr>
// All rights reserved. See LICENSE for details.

// Package taxonomy implements the two-level category model: organizing a
// flat category list into parents and their tags, resolving which single
// category id an article stores, and building category-listing filters
// with tag tabs. All functions are pure; callers fetch rows first and
// pass them in.
package taxonomy

import (
	"strings"

	"github.com/google/uuid"

	"mozaik/internal/models"
)

// Child is a tag: a category nested under exactly one parent. The type
// deliberately has no Children field: the tree is two levels deep and
// downstream code must not be able to treat a tag as a container.
type Child struct {
	models.Category

	// ShortSlug is the URL-facing filter token: the full slug with the
	// parent's slug-plus-hyphen prefix stripped when present, else the
	// full slug unchanged.
	ShortSlug string
}

// Parent is a top-level category together with its tags in name order.
type Parent struct {
	models.Category

	Children []Child
}

// Build organizes a flat, name-ordered category list into parents with
// their tags attached. Order is preserved within both levels. A child
// whose referenced parent does not exist, or whose "parent" is itself
// a child, is dropped rather than reported as an error.
func Build(flat []models.Category) []Parent {
	var parents []Parent
	index := make(map[uuid.UUID]int)
	for _, c := range flat {
		if c.ParentID != nil {
			continue
		}
		index[c.ID] = len(parents)
		parents = append(parents, Parent{Category: c})
	}

	for _, c := range flat {
		if c.ParentID == nil {
			continue
		}
		i, ok := index[*c.ParentID]
		if !ok {
			continue
		}
		parents[i].Children = append(parents[i].Children, Child{
			Category:  c,
			ShortSlug: ShortSlug(parents[i].Slug, c.Slug),
		})
	}

	return parents
}

// BuildOne organizes a single parent with the given children, applying
// the same short-slug derivation as Build. Children not belonging to
// the parent are dropped.
func BuildOne(parent models.Category, children []models.Category) Parent {
	p := Parent{Category: parent}
	for _, c := range children {
		if c.ParentID == nil || *c.ParentID != parent.ID {
			continue
		}
		p.Children = append(p.Children, Child{
			Category:  c,
			ShortSlug: ShortSlug(parent.Slug, c.Slug),
		})
	}
	return p
}

// AttachCounts sets ArticleCount on every node from a map of category
// id to article count, as produced by ArticleStore.CountByCategory.
// Categories absent from the map report 0.
func AttachCounts(parents []Parent, counts map[uuid.UUID]int) {
	for i := range parents {
		parents[i].ArticleCount = counts[parents[i].ID]
		for j := range parents[i].Children {
			parents[i].Children[j].ArticleCount = counts[parents[i].Children[j].ID]
		}
	}
}

// ShortSlug strips the parent's slug-plus-hyphen prefix from a child's
// full slug. "zdravlje" + "zdravlje-recepti" → "recepti"; a child slug
// without the prefix ("djeca") is returned unchanged.
func ShortSlug(parentSlug, childSlug string) string {
	if strings.HasPrefix(childSlug, parentSlug+"-") {
		return childSlug[len(parentSlug)+1:]
	}
	return childSlug
}
