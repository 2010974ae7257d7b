package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/curtisnewbie/timesplit/appointment"
	"github.com/curtisnewbie/timesplit/util"
	"github.com/curtisnewbie/timesplit/util/errs"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	ErrCodeUnknown = "UNKNOWN_ERROR"
	ErrCodeNoDB    = "DATABASE_NOT_CONFIGURED"
)

// Web endpoint's response.
type Resp struct {
	ErrorCode string `json:"errorCode"`
	Msg       string `json:"msg"`
	Error     bool   `json:"error"`
	Data      any    `json:"data"`
}

func OkRespWData(data any) Resp {
	return Resp{Data: data}
}

func ErrorRespWCode(code string, msg string) Resp {
	return Resp{ErrorCode: code, Msg: msg, Error: true}
}

func dispatchJsonCode(c *gin.Context, code int, body any) {
	c.Status(code)
	c.Header("Content-Type", "application/json")
	if err := json.NewEncoder(c.Writer).Encode(body); err != nil {
		util.Errorf("Failed to write response, %v", err)
	}
}

func dispatchErr(c *gin.Context, err error) {
	var me *errs.MisoErr
	if errors.As(err, &me) && me.Code() != "" {
		util.Warnf("%v '%v' failed, code: '%v', msg: '%v', internalMsg: '%v'", c.Request.Method, c.Request.RequestURI,
			me.Code(), me.Msg(), me.InternalMsg())
		dispatchJsonCode(c, http.StatusBadRequest, ErrorRespWCode(me.Code(), me.Error()))
		return
	}
	util.Errorf("%v '%v' failed, %v", c.Request.Method, c.Request.RequestURI, errs.ErrorStackTrace(err))
	dispatchJsonCode(c, http.StatusInternalServerError, ErrorRespWCode(ErrCodeUnknown, "Unknown system error, please try again later"))
}

// Build router with endpoints:
//
//	POST /appointment     - create appointment from the form
//	POST /appointment/:id - update appointment from the form
//
// Appointments are only bound and echoed back if db is nil.
func NewRouter(db *gorm.DB) *gin.Engine {
	engine := gin.New()
	if util.IsDebugLevel() {
		engine.Use(gin.Logger())
	}
	engine.Use(gin.Recovery())
	engine.POST("/appointment", func(c *gin.Context) { saveAppointment(c, db, 0) })
	engine.POST("/appointment/:id", func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id < 1 {
			dispatchErr(c, errs.ErrIllegalArgument.WithInternalMsg("invalid id '%v'", c.Param("id")))
			return
		}
		saveAppointment(c, db, id)
	})
	engine.NoRoute(func(c *gin.Context) {
		util.Warnf("NoRoute for %s '%s', returning 404", c.Request.Method, c.Request.RequestURI)
		c.AbortWithStatus(http.StatusNotFound)
	})
	return engine
}

func saveAppointment(c *gin.Context, db *gorm.DB, id int64) {
	a := &appointment.Appointment{}
	if id > 0 {
		if db == nil {
			dispatchJsonCode(c, http.StatusBadRequest, ErrorRespWCode(ErrCodeNoDB, "Database is not configured"))
			return
		}
		found, err := appointment.FindById(db, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				dispatchJsonCode(c, http.StatusNotFound, ErrorRespWCode(errs.ErrCodeIllegalArgument, "Appointment not found"))
				return
			}
			dispatchErr(c, err)
			return
		}
		a = found
	}

	if err := a.BindForm(c); err != nil {
		dispatchErr(c, err)
		return
	}
	if db != nil {
		if err := appointment.Save(db, a); err != nil {
			dispatchErr(c, err)
			return
		}
		util.Infof("Saved appointment %d", a.Id)
	}
	dispatchJsonCode(c, http.StatusOK, OkRespWData(appointmentView(a)))
}

func appointmentView(a *appointment.Appointment) map[string]any {
	return map[string]any{
		"appointment": a,
		"derived":     a.Derived(),
	}
}

// Serve until ctx is cancelled.
func serve(ctx context.Context, addr string, db *gorm.DB) error {
	gin.SetMode(gin.ReleaseMode)
	server := &http.Server{
		Addr:    addr,
		Handler: NewRouter(db),
	}
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(sctx); err != nil {
			util.Errorf("Failed to shutdown http server, %v", err)
		}
	}()

	util.Infof("Serving on '%s'", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errs.WrapErrf(err, "http server failed")
	}
	util.Infof("Http server stopped")
	return nil
}
