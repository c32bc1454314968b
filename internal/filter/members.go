package filter

import "briefing/internal/model"

// Members returns the loaded articles referenced by a cluster, in the order
// they appear in items. Ids without a loaded article are skipped.
func Members(c model.Cluster, items []model.Article) []model.Article {
	ids := make(map[string]struct{}, len(c.ArticleIDs))
	for _, id := range c.ArticleIDs {
		ids[id] = struct{}{}
	}
	var out []model.Article
	for _, a := range items {
		if _, ok := ids[a.ID]; ok {
			out = append(out, a)
		}
	}
	return out
}

// FindCluster returns the cluster with the given id.
func FindCluster(clusters []model.Cluster, id string) (model.Cluster, bool) {
	for _, c := range clusters {
		if c.ClusterID == id {
			return c, true
		}
	}
	return model.Cluster{}, false
}
