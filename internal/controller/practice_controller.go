package controller

import (
	"errors"
	"net/http"

	"practice_backend/internal/model"
	"practice_backend/internal/service"
	"practice_backend/internal/util"
	"practice_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PracticeController struct {
	Service    *service.PracticeService
	Dimensions *service.KnowledgeDimensionService
}

func NewPracticeController(s *service.PracticeService, dims *service.KnowledgeDimensionService) *PracticeController {
	return &PracticeController{Service: s, Dimensions: dims}
}

// @Summary 生成练习题
// @Description 根据上一题得分与所选维度生成一道题并入库，模型不可用时使用兜底模板
// @Tags 练习
// @Accept json
// @Produce json
// @Param request body model.PracticeRequest true "出题参数"
// @Success 200 {object} model.GenerateResponse
// @Failure 400 {object} util.Response
// @Failure 429 {object} util.Response
// @Failure 502 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /practice/generate [post]
func (c *PracticeController) Generate(ctx *gin.Context) {
	var req model.PracticeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	log := logger.WithContext(ctx.Request.Context())
	log.Info("/practice/generate",
		zap.Uints("dimensions", req.Dimensions),
		zap.Int("difficulty", req.Difficulty),
		zap.Int("question_type", req.QuestionType),
	)

	res, err := c.Service.Generate(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, "生成失败", err)
		return
	}

	log.Info("generate OK",
		zap.Uint("question_id", res.ID),
		zap.Uints("dims", res.Item.Dimensions),
		zap.Int("points", len(res.Item.CorePoints)),
	)
	ctx.JSON(http.StatusOK, model.GenerateResponse{QuestionID: res.ID, Item: res.Item})
}

// @Summary 提交作答
// @Description 对作答评分并保存作答记录，模型不可用时使用兜底评分
// @Tags 练习
// @Accept json
// @Produce json
// @Param request body model.AnswerRequest true "作答内容"
// @Success 200 {object} model.AnswerResponse
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 429 {object} util.Response
// @Failure 502 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /practice/answer [post]
func (c *PracticeController) Answer(ctx *gin.Context) {
	var req model.AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	log := logger.WithContext(ctx.Request.Context())
	log.Info("/practice/answer", zap.Uint("q_id", req.QuestionID))

	res, err := c.Service.SubmitAnswer(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, "评分失败", err)
		return
	}

	log.Info("answer OK", zap.Uint("answer_record_id", res.RecordID), zap.Float64("total", res.Result.TotalScore))
	ctx.JSON(http.StatusOK, model.AnswerResponse{AnswerRecordID: res.RecordID, GradingResult: res.Result})
}

// @Summary 知识维度列表
// @Tags 练习
// @Produce json
// @Success 200 {array} model.KnowledgeDimension
// @Failure 500 {object} util.Response
// @Router /practice/dimensions [get]
func (c *PracticeController) ListDimensions(ctx *gin.Context) {
	dims, err := c.Dimensions.ListDimensions(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dims)
}

func respondError(ctx *gin.Context, action string, err error) {
	logger.WithContext(ctx.Request.Context()).Error(action, zap.Error(err))

	msg := action + "：" + err.Error()
	switch {
	case errors.Is(err, util.ErrQuestionNotFound):
		util.NotFound(ctx, msg)
	case errors.Is(err, util.ErrPersistence):
		util.Error(ctx, http.StatusServiceUnavailable, msg)
	default:
		util.Error(ctx, http.StatusBadGateway, msg)
	}
}
