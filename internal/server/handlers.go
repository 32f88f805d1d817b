package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/piwi3910/SpoolCut/internal/engine"
	"github.com/piwi3910/SpoolCut/internal/geometry"
	"github.com/piwi3910/SpoolCut/internal/model"
	"github.com/piwi3910/SpoolCut/internal/wedge"
)

// fittingJSON is a fitting as sent by clients: family by name, pressure
// class as text and an optional angle.
type fittingJSON struct {
	Family        string   `json:"family"`
	DN            int      `json:"dn"`
	PressureClass string   `json:"pressure_class"`
	AngleDegrees  *float64 `json:"angle_degrees"`
}

func (f fittingJSON) toRequest(defaultPC model.PressureClass) (model.FittingRequest, error) {
	pc := defaultPC
	if f.PressureClass != "" {
		parsed, err := model.ParsePressureClass(f.PressureClass)
		if err != nil {
			return model.FittingRequest{}, err
		}
		pc = parsed
	}
	req := model.NewFittingRequest(model.ParseFittingFamily(f.Family), f.DN, pc)
	if f.AngleDegrees != nil {
		req.AngleDegrees = *f.AngleDegrees
	}
	return req, nil
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// respondError renders geometry refusals as 422 and anything else as 500.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	var ge *geometry.GeometryError
	if errors.As(err, &ge) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": ge.Error(), "kind": ge.Kind.String()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "dimension_rows": s.table.Len()})
}

func (s *Server) listDimensions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rows": s.table.Rows()})
}

// getDimension returns one exact row with its bolt pattern. Unlike the
// calculations, an unknown DN is a 404 here rather than the fallback row.
func (s *Server) getDimension(c *gin.Context) {
	dn, err := strconv.Atoi(c.Param("dn"))
	if err != nil {
		badRequest(c, fmt.Errorf("invalid DN %q", c.Param("dn")))
		return
	}
	if !s.table.Has(dn) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("DN%d is not in the dimension table", dn)})
		return
	}

	pc := s.settings.PressureClass
	if q := c.Query("pressure_class"); q != "" {
		if pc, err = model.ParsePressureClass(q); err != nil {
			badRequest(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"row":          s.table.Lookup(dn),
		"bolt_pattern": s.engine.BoltPattern(dn, pc),
	})
}

func (s *Server) deduction(c *gin.Context) {
	var body fittingJSON
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	req, err := body.toRequest(s.settings.PressureClass)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"family":    req.Family.String(),
		"dn":        req.NominalDiameter,
		"deduction": s.engine.Deduction(req),
	})
}

type bendRequest struct {
	DN           int     `json:"dn"`
	AngleDegrees float64 `json:"angle_degrees"`
}

func (s *Server) bend(c *gin.Context) {
	var req bendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	layout := s.engine.BendLayout(req.DN, req.AngleDegrees)
	c.JSON(http.StatusOK, gin.H{"layout": layout, "feasible": layout.Feasible()})
}

type branchRequest struct {
	MainDN   int `json:"main_dn" binding:"required"`
	BranchDN int `json:"branch_dn" binding:"required"`
}

func (s *Server) branch(c *gin.Context) {
	var req branchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	profile, err := s.engine.BranchProfile(req.MainDN, req.BranchDN)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

type twoPlaneRequest struct {
	DN           int     `json:"dn"`
	Offset       float64 `json:"offset"`
	AngleDegrees float64 `json:"angle_degrees"`
}

func (s *Server) twoPlaneOffset(c *gin.Context) {
	var req twoPlaneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := s.engine.TwoPlaneOffset(req.DN, req.Offset, req.AngleDegrees)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type rollingRequest struct {
	Roll   float64 `json:"roll"`
	Set    float64 `json:"set"`
	Height float64 `json:"height"`
}

func (s *Server) rollingOffset(c *gin.Context) {
	var req rollingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, s.engine.RollingOffset(req.Roll, req.Set, req.Height))
}

type multiPointRequest struct {
	Waypoints []geometry.Waypoint `json:"waypoints"`
}

func (s *Server) multiPointOffset(c *gin.Context) {
	var req multiPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := s.engine.MultiPointOffset(req.Waypoints)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type segmentedBendRequest struct {
	DN         int     `json:"dn"`
	Radius     float64 `json:"radius"`
	Segments   int     `json:"segments"`
	TotalAngle float64 `json:"total_angle"`
}

func (s *Server) segmentedBend(c *gin.Context) {
	var req segmentedBendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := s.engine.SegmentedBend(req.DN, req.Radius, req.Segments, req.TotalAngle)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type wedgeRequest struct {
	DN   int        `json:"dn"`
	Gaps wedge.Gaps `json:"gaps"`
}

func (s *Server) wedge(c *gin.Context) {
	var req wedgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, wedge.Solve(s.table, req.DN, req.Gaps))
}

type packCut struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Length float64 `json:"length"`
}

type packRequest struct {
	Cuts        []packCut `json:"cuts" binding:"required"`
	StockLength *float64  `json:"stock_length"`
	KerfWidth   *float64  `json:"kerf_width"`
}

type packResponse struct {
	model.PackResult
	InfeasibleBars []int           `json:"infeasible_bars"`
	Remnants       []model.Remnant `json:"remnants"`
	Efficiency     float64         `json:"efficiency"`
}

func (s *Server) pack(c *gin.Context) {
	var req packRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	settings := s.settings
	if req.StockLength != nil {
		settings.StockLength = *req.StockLength
	}
	if req.KerfWidth != nil {
		settings.KerfWidth = *req.KerfWidth
	}
	if settings.StockLength <= 0 || settings.KerfWidth < 0 {
		badRequest(c, fmt.Errorf("stock_length must be positive and kerf_width not negative"))
		return
	}

	cuts := make([]model.CutRequest, len(req.Cuts))
	for i, pc := range req.Cuts {
		if pc.Length <= 0 {
			badRequest(c, fmt.Errorf("cut %d: length must be positive", i+1))
			return
		}
		cuts[i] = model.NewCutRequest(pc.Label, pc.Length)
		if pc.ID != "" {
			cuts[i].ID = pc.ID
		}
	}

	result := engine.New(settings).Pack(cuts)
	resp := packResponse{
		PackResult:     result,
		InfeasibleBars: []int{},
		Remnants:       model.DetectRemnants(result, settings.MinRemnantLength),
		Efficiency:     result.TotalEfficiency(),
	}
	if resp.Remnants == nil {
		resp.Remnants = []model.Remnant{}
	}
	for _, b := range result.InfeasibleBars() {
		resp.InfeasibleBars = append(resp.InfeasibleBars, b.ID)
	}
	c.JSON(http.StatusOK, resp)
}

type spoolRequest struct {
	CenterToCenter float64     `json:"center_to_center"`
	Start          fittingJSON `json:"start"`
	End            fittingJSON `json:"end"`
	WeldGap        *float64    `json:"weld_gap"`
}

func (s *Server) spool(c *gin.Context) {
	var req spoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	start, err := req.Start.toRequest(s.settings.PressureClass)
	if err != nil {
		badRequest(c, err)
		return
	}
	end, err := req.End.toRequest(s.settings.PressureClass)
	if err != nil {
		badRequest(c, err)
		return
	}
	gap := s.settings.WeldGap
	if req.WeldGap != nil {
		gap = *req.WeldGap
	}
	c.JSON(http.StatusOK, s.engine.SpoolCutLength(req.CenterToCenter, start, end, gap))
}
