package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"briefing/internal/datasource"
	"briefing/internal/filter"
	"briefing/internal/model"
	"briefing/internal/render"
)

type newsResponse struct {
	Items     []model.Article `json:"items"`
	Period    model.Period    `json:"period"`
	Requested model.Period    `json:"requested_period"`
	Notice    string          `json:"notice"`
	Fallback  bool            `json:"fallback"`
}

type clusterResponse struct {
	Cluster  model.Cluster   `json:"cluster"`
	Articles []model.Article `json:"articles"`
}

func parseQuery(c *gin.Context) (filter.Query, error) {
	topic, err := model.ParseTopic(c.Query("topic"))
	if err != nil {
		return filter.Query{}, err
	}
	period, err := model.ParsePeriod(c.Query("period"))
	if err != nil {
		return filter.Query{}, err
	}
	order, err := model.ParseOrder(c.Query("order"))
	if err != nil {
		return filter.Query{}, err
	}
	return filter.Query{Topic: topic, Period: period, Text: c.Query("q"), Order: order}, nil
}

func (s *Server) fail(c *gin.Context, err error) {
	s.log.Error("load resource", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "static": s.src.Static()})
}

func (s *Server) listNews(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	feed, err := s.src.LoadFeed(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	res := filter.Resolve(feed.Items, q, s.now())
	c.JSON(http.StatusOK, newsResponse{
		Items:     res.Items,
		Period:    res.Period,
		Requested: q.Period,
		Notice:    res.Notice,
		Fallback:  feed.Fallback,
	})
}

func (s *Server) getArticle(c *gin.Context) {
	a, err := s.src.LoadArticle(c.Request.Context(), c.Param("id"))
	if errors.Is(err, datasource.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": render.ArticleNotFound})
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (s *Server) listClusters(c *gin.Context) {
	clusters, err := s.src.LoadClusters(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, clusters)
}

func (s *Server) getCluster(c *gin.Context) {
	var (
		clusters []model.Cluster
		feed     datasource.Feed
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		clusters, err = s.src.LoadClusters(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		feed, err = s.src.LoadFeed(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.fail(c, err)
		return
	}

	cluster, ok := filter.FindCluster(clusters, c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": render.ClusterNotFound})
		return
	}

	members := filter.Members(cluster, feed.Items)
	if members == nil {
		members = []model.Article{}
	}
	c.JSON(http.StatusOK, clusterResponse{Cluster: cluster, Articles: members})
}

func (s *Server) getTrends(c *gin.Context) {
	t, err := s.src.LoadTrends(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	ratio := make(map[model.Topic]int, 3)
	for _, topic := range []model.Topic{model.TopicAI, model.TopicScienceTech, model.TopicOther} {
		ratio[topic] = t.TopicCount(topic)
	}
	for topic, n := range t.TopicRatio {
		ratio[topic] = n
	}
	t.TopicRatio = ratio
	c.JSON(http.StatusOK, t)
}

func (s *Server) collect(c *gin.Context) {
	if s.src.Static() {
		c.JSON(http.StatusConflict, gin.H{"error": render.CollectDisabled})
		return
	}

	res, err := s.src.Collect(c.Request.Context())
	if errors.Is(err, datasource.ErrStaticMode) {
		c.JSON(http.StatusConflict, gin.H{"error": render.CollectDisabled})
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
