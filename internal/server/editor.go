package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abdouni493/auto-rental-application/internal/template/editor"
	templatedomain "github.com/abdouni493/auto-rental-application/internal/template/domain"
)

type openSessionRequest struct {
	TemplateID string                  `json:"templateId"`
	Name       string                  `json:"name"`
	Category   templatedomain.Category `json:"category"`
}

type sessionResponse struct {
	SessionID  string                  `json:"sessionId"`
	Template   templatedomain.Template `json:"template"`
	SelectedID string                  `json:"selectedId,omitempty"`
	Dirty      bool                    `json:"dirty"`
}

func (s *Server) sessionResponse(id string, session *editor.Session) sessionResponse {
	resp := sessionResponse{
		SessionID: id,
		Template:  session.Template(),
		Dirty:     session.Dirty(),
	}
	if selected, ok := session.Selected(); ok {
		resp.SelectedID = selected.ID
	}
	return resp
}

// OpenEditorSession starts a designer session, either on a stored
// template or on a blank canvas when only a name and category are given.
func (s *Server) OpenEditorSession(c *gin.Context) {
	var req openSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var tpl templatedomain.Template
	if req.TemplateID != "" {
		stored, err := s.templateSvc.GetByID(c.Request.Context(), req.TemplateID)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		tpl = *stored
	} else {
		if !req.Category.Valid() {
			AbortWithError(c, templatedomain.ErrInvalidCategory)
			return
		}
		if req.Name == "" {
			AbortWithError(c, templatedomain.ErrInvalidName)
			return
		}
		tpl = templatedomain.Blank(req.Name, req.Category)
	}

	id, session := s.editorMgr.Open(tpl)
	c.JSON(http.StatusOK, gin.H{"data": s.sessionResponse(id, session)})
}

func (s *Server) GetEditorSession(c *gin.Context) {
	session, err := s.editorMgr.Get(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": s.sessionResponse(c.Param("id"), session)})
}

func (s *Server) CloseEditorSession(c *gin.Context) {
	s.editorMgr.Close(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type addElementRequest struct {
	Type    templatedomain.ElementType `json:"type"`
	Label   string                     `json:"label"`
	Content string                     `json:"content"`
}

func (s *Server) AddEditorElement(c *gin.Context) {
	session, err := s.editorMgr.Get(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req addElementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	element, err := session.AddElement(req.Type, req.Label, req.Content)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": element})
}

func (s *Server) UpdateEditorElement(c *gin.Context) {
	session, err := s.editorMgr.Get(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var patch editor.ElementPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	session.UpdateElement(c.Param("elementId"), patch)
	c.JSON(http.StatusOK, gin.H{"data": s.sessionResponse(c.Param("id"), session)})
}

func (s *Server) RemoveEditorElement(c *gin.Context) {
	session, err := s.editorMgr.Get(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	session.RemoveElement(c.Param("elementId"))
	c.JSON(http.StatusOK, gin.H{"data": s.sessionResponse(c.Param("id"), session)})
}

type selectionRequest struct {
	ElementID string `json:"elementId"`
}

// SelectEditorElement selects an element, or clears the selection when
// elementId is empty (a click on the page background).
func (s *Server) SelectEditorElement(c *gin.Context) {
	session, err := s.editorMgr.Get(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if req.ElementID == "" {
		session.ClearSelection()
	} else {
		session.Select(req.ElementID)
	}
	c.JSON(http.StatusOK, gin.H{"data": s.sessionResponse(c.Param("id"), session)})
}

type dragRequest struct {
	Action    string `json:"action"`
	ElementID string `json:"elementId"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
}

// DragEditorElement relays pointer events: begin on press, move while
// held, end on release.
func (s *Server) DragEditorElement(c *gin.Context) {
	session, err := s.editorMgr.Get(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req dragRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	switch req.Action {
	case "begin":
		session.BeginDrag(req.ElementID, editor.Point{X: req.X, Y: req.Y})
	case "move":
		session.DragTo(editor.Point{X: req.X, Y: req.Y})
	case "end":
		session.EndDrag()
	default:
		AbortWithError(c, newValidationError("action", "invalid_drag_action", "action must be begin, move or end"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": s.sessionResponse(c.Param("id"), session)})
}

// SaveEditorSession persists the working copy through the template store
// and marks the session clean.
func (s *Server) SaveEditorSession(c *gin.Context) {
	session, err := s.editorMgr.Get(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	saved, catalog, err := s.templateSvc.Upsert(c.Request.Context(), session.Template())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	session.AdoptID(saved.ID)
	session.MarkSaved()
	c.JSON(http.StatusOK, gin.H{"data": catalog})
}
