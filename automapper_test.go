package automap_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/centraunit/automap"
	"github.com/centraunit/automap/mock"
)

type AutomapperTestSuite struct {
	suite.Suite
	container *automap.MemoryContainer
	logs      *observer.ObservedLogs
	logger    *zap.Logger
}

func (s *AutomapperTestSuite) SetupTest() {
	s.container = automap.NewContainer()
	core, logs := observer.New(zap.DebugLevel)
	s.logger = zap.New(core)
	s.logs = logs
}

func (s *AutomapperTestSuite) config(types ...reflect.Type) *automap.Config {
	cfg, err := automap.ConfigFromTypes(types...)
	s.Require().NoError(err)
	return cfg
}

func (s *AutomapperTestSuite) TestMapTypes() {
	concretes := []reflect.Type{singletonDB, auditedCache, legacyCache}
	mapper := automap.NewAutomapper(s.config(concretes...), automap.WithLogger(s.logger))

	result, err := mapper.MapTypes(s.container, []reflect.Type{databaseType, cacheType}, concretes)
	s.Require().NoError(err)
	s.Len(result.Registrations, 2)
	s.Empty(result.Failed)

	db, ok := s.container.Binding(databaseType, automap.TypeName(singletonDB))
	s.Require().True(ok)
	s.Equal(automap.LifetimeSingleton, db.Lifetime)
	s.Empty(db.Behaviors)

	cache, ok := s.container.Binding(cacheType, automap.TypeName(auditedCache))
	s.Require().True(ok)
	s.Equal(automap.LifetimeTransient, cache.Lifetime)
	s.Equal([]automap.Behavior{automap.PolicyInjectionBehavior{}}, cache.Behaviors)
	s.True(s.container.HasExtension(automap.PolicyInjectionBehaviorName))

	s.Equal(1, s.logs.FilterMessage("installed container extension").Len())
	s.Equal(2, s.logs.FilterMessage("registered mapping").Len())
}

func (s *AutomapperTestSuite) TestMapReportsOnlyNewBindings() {
	pre := automap.MappingOf[mock.Database, *mock.MockDB]()
	s.Require().NoError(s.container.RegisterBinding(pre.From, pre.To, automap.TypeName(pre.To), automap.LifetimeTransient, nil))
	mapper := automap.NewAutomapper(nil)

	result, err := mapper.Map(s.container, []automap.TypeMapping{
		pre,
		automap.MappingOf[mock.Cache, *mock.MemoryCache](),
	})
	s.Require().NoError(err)
	s.Require().Len(result.Registrations, 1)
	s.Equal(cacheType, result.Registrations[0].RegisteredType)
}

func (s *AutomapperTestSuite) TestMapStopsAtFirstFailure() {
	mapper := automap.NewAutomapper(nil)
	mappings := []automap.TypeMapping{
		automap.MappingOf[mock.Database, *mock.MockDB](),
		automap.MappingOf[mock.Database, string](),
		automap.MappingOf[mock.Cache, *mock.MemoryCache](),
	}

	result, err := mapper.Map(s.container, mappings)
	var validationErr *automap.ValidationError
	s.Require().True(errors.As(err, &validationErr))
	s.Len(result.Registrations, 1)
	s.Equal(mappings[1:], result.Failed)
}

func (s *AutomapperTestSuite) TestMapContinueOnError() {
	mapper := automap.NewAutomapper(nil, automap.WithContinueOnError(), automap.WithLogger(s.logger))
	mappings := []automap.TypeMapping{
		automap.MappingOf[mock.Database, string](),
		automap.MappingOf[mock.Database, *mock.MockDB](),
		automap.MappingOf[mock.Cache, bool](),
	}

	result, err := mapper.Map(s.container, mappings)
	s.Require().Error(err)
	s.Len(multierr.Errors(err), 2)
	s.Len(result.Registrations, 1)
	s.Equal([]automap.TypeMapping{mappings[0], mappings[2]}, result.Failed)
	s.Equal(2, s.logs.FilterMessage("skipping mapping").Len())
}

func (s *AutomapperTestSuite) TestMapTypesDuplicate() {
	mapper := automap.NewAutomapper(nil)

	_, err := mapper.MapTypes(s.container, []reflect.Type{cacheType}, []reflect.Type{namedCache, auditedCache})
	var dupErr *automap.DuplicateMappingError
	s.True(errors.As(err, &dupErr))

	bindings, err := s.container.ListBindings()
	s.Require().NoError(err)
	s.Empty(bindings)
}

func (s *AutomapperTestSuite) TestMapTrackerFailure() {
	cause := errors.New("listing unavailable")
	failing := &mock.FailingContainer{Container: s.container, ListErr: cause}

	_, err := automap.NewAutomapper(nil).Map(failing, nil)
	s.ErrorIs(err, cause)
}

func (s *AutomapperTestSuite) TestMapExtensionFailureKeepsBoundMapping() {
	cause := errors.New("interception unavailable")
	failing := &mock.FailingContainer{Container: s.container, ExtensionErr: cause}
	mapper := automap.NewAutomapper(s.config(auditedCache))
	mapping := automap.MappingOf[mock.Cache, mock.AuditedCache]()

	result, err := mapper.Map(failing, []automap.TypeMapping{mapping})
	s.ErrorIs(err, cause)
	s.Require().Len(result.Registrations, 1)
	s.Equal(auditedCache, result.Registrations[0].MappedToType)
	s.Empty(result.Failed, "a bound mapping is reported as registered, not failed")
	s.False(s.container.HasExtension(automap.PolicyInjectionBehaviorName))
}

func TestAutomapperSuite(t *testing.T) {
	suite.Run(t, new(AutomapperTestSuite))
}
