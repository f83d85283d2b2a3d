// Package validator provides small, composable field rules for form input.
//
// Rules are plain values; Apply runs them all and collects every failure:
//
//	err := validator.Apply(
//		validator.RequiredString("email", in.Email),
//		validator.Email("email", in.Email),
//		validator.MinLenString("password", in.Password, 6),
//		validator.When(in.Category != "", validator.OneOf("category", in.Category, categories...)),
//	)
//	if ve := validator.ExtractValidationErrors(err); ve != nil {
//		// ve.Get("email"), ve.Map()
//	}
//
// Every ValidationError carries a translation key and values so messages can
// be localized later with Translate.
package validator
