package server

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/otherjamesbrown/minuted/pkg/deadlines"
	pferrors "github.com/otherjamesbrown/minuted/pkg/errors"
	"github.com/otherjamesbrown/minuted/pkg/logging"
	"github.com/otherjamesbrown/minuted/pkg/pipeline"
)

func (s *Server) handleUpload(c *gin.Context) {
	result, status, errMsg := s.processUpload(c)
	if errMsg != "" {
		c.JSON(status, gin.H{"success": false, "error": errMsg})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"meeting_id": result.MeetingID,
		"transcript": result.Transcript,
		"summary":    result.Summary,
		"deadlines":  result.Deadlines,
	})
}

// processUpload reads the multipart audio field and runs the pipeline.
// On failure it returns an HTTP status and a user-facing message.
func (s *Server) processUpload(c *gin.Context) (*pipeline.Result, int, string) {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return nil, http.StatusBadRequest, "audio file is required"
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, http.StatusBadRequest, "could not read uploaded file"
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		return nil, http.StatusBadRequest, "could not read uploaded file"
	}
	if len(audio) == 0 {
		return nil, http.StatusBadRequest, "uploaded file is empty"
	}

	result, err := s.processor.Process(c.Request.Context(), fileHeader.Filename, audio)
	if err != nil {
		s.logger.Error("pipeline run failed",
			logging.F("filename", fileHeader.Filename),
			logging.Err(err))

		switch {
		case pferrors.IsValidation(err):
			return nil, http.StatusBadRequest, err.Error()
		case pferrors.IsTranscription(err):
			return nil, http.StatusBadRequest, "could not transcribe the recording; the audio may be corrupt or in an unsupported format"
		case pferrors.IsSummarization(err):
			return nil, http.StatusBadGateway, "summarization failed; please try again"
		default:
			return nil, http.StatusInternalServerError, "internal error while processing the meeting"
		}
	}

	return result, http.StatusOK, ""
}

type addToCalendarRequest struct {
	Deadlines []deadlines.Item `json:"deadlines"`
}

func (s *Server) handleAddToCalendar(c *gin.Context) {
	var req addToCalendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}
	if len(req.Deadlines) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "no deadlines provided"})
		return
	}

	if s.scheduler == nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"added":   []any{},
			"failed":  []any{},
			"message": "calendar integration is not configured",
		})
		return
	}

	outcome, err := s.scheduler.Schedule(c.Request.Context(), req.Deadlines)
	if err != nil {
		// Calendar-level failures are reported in the payload, not as an
		// HTTP error.
		s.logger.Warn("calendar batch failed", logging.Err(err))
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"added":   []any{},
			"failed":  []any{},
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"added":   outcome.Added,
		"failed":  outcome.Failed,
		"message": fmt.Sprintf("added %d event(s), %d failed", len(outcome.Added), len(outcome.Failed)),
	})
}

func (s *Server) handleListMeetings(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))

	meetings, err := s.meetings.List(c.Request.Context(), limit, skip)
	if err != nil {
		s.logger.Error("list meetings failed", logging.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list meetings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"meetings": meetings})
}

func (s *Server) handleSearchMeetings(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	meetings, err := s.meetings.Search(c.Request.Context(), query)
	if err != nil {
		s.logger.Error("search meetings failed", logging.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not search meetings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"meetings": meetings})
}

func (s *Server) handleGetMeeting(c *gin.Context) {
	meeting, err := s.meetings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if pferrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meeting not found"})
			return
		}
		s.logger.Error("get meeting failed", logging.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch meeting"})
		return
	}
	c.JSON(http.StatusOK, meeting)
}

func (s *Server) handleDeleteMeeting(c *gin.Context) {
	if err := s.meetings.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if pferrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meeting not found"})
			return
		}
		s.logger.Error("delete meeting failed", logging.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete meeting"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleStats(c *gin.Context) {
	stats, err := s.meetings.Stats(c.Request.Context())
	if err != nil {
		s.logger.Error("stats failed", logging.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute statistics"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// handleIndex renders the browse/upload page.
func (s *Server) handleIndex(c *gin.Context) {
	meetings, err := s.meetings.List(c.Request.Context(), 10, 0)
	if err != nil {
		s.logger.Error("list meetings failed", logging.Err(err))
		meetings = nil
	}

	stats, err := s.meetings.Stats(c.Request.Context())
	if err != nil {
		s.logger.Error("stats failed", logging.Err(err))
		stats = nil
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Meetings": meetings,
		"Stats":    stats,
	})
}

// handleUploadPage is the server-rendered counterpart of handleUpload.
func (s *Server) handleUploadPage(c *gin.Context) {
	result, status, errMsg := s.processUpload(c)
	if errMsg != "" {
		c.HTML(status, "result.html", gin.H{"Error": errMsg})
		return
	}

	c.HTML(http.StatusOK, "result.html", gin.H{"Result": result})
}
