package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type LoggerTestSuite struct {
	suite.Suite
	originalLogger *zap.Logger
	observedLogs   *observer.ObservedLogs
}

func (suite *LoggerTestSuite) SetupSuite() {
	suite.originalLogger = zap.L()
}

func (suite *LoggerTestSuite) TearDownSuite() {
	zap.ReplaceGlobals(suite.originalLogger)
}

func (suite *LoggerTestSuite) SetupTest() {
	core, logs := observer.New(zap.DebugLevel)
	suite.observedLogs = logs
	zap.ReplaceGlobals(zap.New(core))
}

func (suite *LoggerTestSuite) TestGetLogLevelFromString() {
	testCases := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DBG", zapcore.DebugLevel},
		{"Info", zapcore.InfoLevel},
		{"warning", zapcore.WarnLevel},
		{"err", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"  panic ", zapcore.PanicLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tc := range testCases {
		suite.Run(tc.input, func() {
			assert.Equal(suite.T(), tc.expected, getLogLevelFromString(tc.input))
		})
	}
}

func (suite *LoggerTestSuite) TestInit() {
	configs := []*Config{
		{Level: "info", Env: "test", ServiceName: "skillswap-client"},
		{Level: "debug", Env: "development", ServiceName: "skillswap-cli", Console: true},
		{},
	}

	for _, cfg := range configs {
		require.NotPanics(suite.T(), func() { Init(cfg) })
		require.NotPanics(suite.T(), func() { LogInfo("initialised") })
	}
}

func (suite *LoggerTestSuite) TestFormattedLogging() {
	LogWarnf("refresh failed for %s", "/api/users")
	LogInfof("plain message")

	logs := suite.observedLogs.TakeAll()
	require.Len(suite.T(), logs, 2)
	assert.Equal(suite.T(), zapcore.WarnLevel, logs[0].Level)
	assert.Equal(suite.T(), "refresh failed for /api/users", logs[0].Message)
	assert.Equal(suite.T(), "plain message", logs[1].Message)
}

func (suite *LoggerTestSuite) TestTokenFieldIsMasked() {
	LogInfo("session stored", Token("access_token", "eyJhbGciOiJIUzI1NiJ9.body.sig1"), Token("refresh_token", ""))

	logs := suite.observedLogs.TakeAll()
	require.Len(suite.T(), logs, 1)

	fields := logs[0].ContextMap()
	assert.Equal(suite.T(), "eyJh***sig1", fields["access_token"])
	assert.Equal(suite.T(), "", fields["refresh_token"])
}

func (suite *LoggerTestSuite) TestComponentIsNamed() {
	Component("gateway").Info("request sent")

	logs := suite.observedLogs.TakeAll()
	require.Len(suite.T(), logs, 1)
	assert.Equal(suite.T(), "gateway", logs[0].LoggerName)
}

func TestLoggerTestSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}
