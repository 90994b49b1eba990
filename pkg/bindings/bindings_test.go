package bindings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/apperrors"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/models"
)

func testDetail() *models.CodeDefinitionDetail {
	def := models.CodeDefinition{
		ArtifactID:  "shop",
		Author:      "alice",
		BasePackage: "com.acme.shop",
		TableList:   []string{"t_user_detail"},
	}
	return models.NewCodeDefinitionDetail("/work/shop", def, models.CodeDefinitionDetail{},
		time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC))
}

func testDB() *models.DBDefinition {
	return &models.DBDefinition{
		DriverClass: "com.mysql.cj.jdbc.Driver",
		URL:         "jdbc:mysql://localhost:3306/shop",
		Username:    "root",
		Password:    "secret",
	}
}

func TestBuildConfig(t *testing.T) {
	b, err := BuildConfig(testDetail(), testDB())
	require.NoError(t, err)

	assert.Equal(t, "com.mysql.cj.jdbc.Driver", b[KeyDriverClass])
	assert.Equal(t, "jdbc:mysql://localhost:3306/shop", b[KeyURL])
	assert.Equal(t, "root", b[KeyUsername])
	assert.Equal(t, "secret", b[KeyPassword])
	assert.Equal(t, "com.acme.shop.core.Mapper", b[KeyCoreMapperPath])
	assert.Equal(t, "com.acme.shop.model", b[KeyTypeAliasesPackage])
	assert.Equal(t, "alice", b[KeyAuthor])
	assert.Equal(t, "2026/03/09", b[KeyDate])
	assert.Equal(t, "com.acme.shop", b[KeyBasePackage])
	assert.Equal(t, "com.acme.shop.core", b[KeyCorePackage])
	assert.Equal(t, "com.acme.shop.dao", b[KeyMapperPackage])
}

func TestBuildConfig_MissingDatabaseDefinition(t *testing.T) {
	b, err := BuildConfig(testDetail(), nil)

	require.ErrorIs(t, err, apperrors.ErrMissingDatabaseDefinition)
	assert.Nil(t, b)
}

func TestBuildLayer(t *testing.T) {
	b, err := BuildLayer("UserDetail", "t_user_detail", testDetail())
	require.NoError(t, err)

	assert.Equal(t, "/user-detail", b[KeyBaseRequestMapping])
	assert.Equal(t, "UserDetail", b[KeyModelNameUpperCamel])
	assert.Equal(t, "userDetail", b[KeyModelNameLowerCamel])
	assert.Equal(t, "alice", b[KeyAuthor])
	assert.Equal(t, "2026/03/09", b[KeyDate])
	assert.Equal(t, "com.acme.shop", b[KeyBasePackage])
	assert.Equal(t, "com.acme.shop.web", b[KeyControllerPackage])
	assert.Equal(t, "com.acme.shop.service", b[KeyServicePackage])
	assert.Equal(t, "com.acme.shop.service.impl", b[KeyServiceImplPackage])
	assert.Equal(t, "com.acme.shop.model", b[KeyModulePackage])
	assert.Equal(t, "com.acme.shop.dao", b[KeyMapperPackage])
	assert.Equal(t, "t_user_detail", b[KeyTableName])
}

func TestBuildLayer_OverrideKeepsCamelFormsAligned(t *testing.T) {
	b, err := BuildLayer("Member", "t_user_detail", testDetail())
	require.NoError(t, err)

	assert.Equal(t, "Member", b[KeyModelNameUpperCamel])
	assert.Equal(t, "member", b[KeyModelNameLowerCamel])
	assert.Equal(t, "/member", b[KeyBaseRequestMapping])
}

func TestBuildLayer_EmptyModelName(t *testing.T) {
	_, err := BuildLayer("", "t_user_detail", testDetail())
	assert.ErrorIs(t, err, apperrors.ErrInvalidIdentifier)
}

func TestBuild_DeterministicAndFresh(t *testing.T) {
	detail := testDetail()

	a, err := BuildLayer("UserDetail", "t_user_detail", detail)
	require.NoError(t, err)
	b, err := BuildLayer("UserDetail", "t_user_detail", detail)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	a[KeyAuthor] = "mallory"
	assert.Equal(t, "alice", b[KeyAuthor])

	c1, err := BuildConfig(detail, testDB())
	require.NoError(t, err)
	c2, err := BuildConfig(detail, testDB())
	require.NoError(t, err)
	assert.Equal(t, c1, c2)
}
