package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bluemountain/brewdesk/internal/app"
	"github.com/bluemountain/brewdesk/internal/domain"
)

// EnquiryResponse is the API representation of an enquiry.
type EnquiryResponse struct {
	ID               string `json:"id" doc:"Unique identifier"`
	BusinessName     string `json:"business_name" doc:"Submitting business"`
	ContactPerson    string `json:"contact_person" doc:"Person to reply to"`
	Email            string `json:"email" doc:"Reply address"`
	Location         string `json:"location,omitempty" doc:"Business location"`
	Message          string `json:"message" doc:"Free-form enquiry text"`
	SelectionSummary string `json:"selection_summary,omitempty" doc:"Chosen bean, stage and origin"`
	Status           string `json:"status" doc:"Dispatch state"`
	CreatedAt        string `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
	UpdatedAt        string `json:"updated_at" doc:"Last update timestamp (ISO 8601)"`
}

func toEnquiryResponse(e domain.Enquiry) EnquiryResponse {
	return EnquiryResponse{
		ID:               e.ID,
		BusinessName:     e.BusinessName,
		ContactPerson:    e.ContactPerson,
		Email:            e.Email,
		Location:         e.Location,
		Message:          e.Message,
		SelectionSummary: e.SelectionSummary,
		Status:           string(e.Status),
		CreatedAt:        e.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:        e.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// SelectionBody is the optional shop selection attached to a submission.
type SelectionBody struct {
	BeanType string `json:"bean_type,omitempty" enum:"arabica,robusta" doc:"Coffee variety"`
	Stage    string `json:"stage,omitempty" enum:"berry,parchment,green,roasted,ground" doc:"Processing stage"`
	Origin   string `json:"origin,omitempty" enum:"mizoram,manipur,sikkim,meghalaya" doc:"Growing region"`
}

func (b SelectionBody) selection() domain.Selection {
	return domain.Selection{
		Bean:   domain.BeanType(b.BeanType),
		Stage:  domain.Stage(b.Stage),
		Origin: domain.Origin(b.Origin),
	}
}

// SessionResponse is the API representation of a configurator session.
type SessionResponse struct {
	ID       string `json:"id" doc:"Session identifier"`
	BeanType string `json:"bean_type,omitempty" doc:"Chosen coffee variety"`
	Stage    string `json:"stage,omitempty" doc:"Chosen processing stage"`
	Origin   string `json:"origin,omitempty" doc:"Chosen growing region"`
	Complete bool   `json:"complete" doc:"Whether all three steps are chosen"`
	Summary  string `json:"summary,omitempty" doc:"Display summary, set once complete"`
}

func toSessionResponse(id string, sel domain.Selection) SessionResponse {
	resp := SessionResponse{
		ID:       id,
		BeanType: string(sel.Bean),
		Stage:    string(sel.Stage),
		Origin:   string(sel.Origin),
		Complete: sel.IsComplete(),
	}
	if summary, err := sel.Summary(); err == nil {
		resp.Summary = summary
	}
	return resp
}

// FormResponse is the API representation of a contact-form session.
type FormResponse struct {
	ID               string `json:"id" doc:"Form session identifier"`
	BusinessName     string `json:"business_name,omitempty"`
	ContactPerson    string `json:"contact_person,omitempty"`
	Email            string `json:"email,omitempty"`
	Location         string `json:"location,omitempty"`
	Message          string `json:"message,omitempty"`
	SelectionSummary string `json:"selection_summary,omitempty"`
	StatusKind       string `json:"status_kind,omitempty" doc:"Outcome of the last submission"`
	StatusText       string `json:"status_text,omitempty" doc:"Display text for the outcome"`
}

func toFormResponse(id string, form *app.ContactForm) FormResponse {
	fields := form.Fields()
	status := form.Status()
	return FormResponse{
		ID:               id,
		BusinessName:     fields.BusinessName,
		ContactPerson:    fields.ContactPerson,
		Email:            fields.Email,
		Location:         fields.Location,
		Message:          fields.Message,
		SelectionSummary: fields.SelectionSummary,
		StatusKind:       string(status.Kind),
		StatusText:       status.Text,
	}
}

// --- Submit Enquiry ---

type SubmitEnquiryInput struct {
	Body struct {
		BusinessName  string         `json:"business_name" minLength:"1" maxLength:"255" doc:"Submitting business"`
		ContactPerson string         `json:"contact_person" minLength:"1" maxLength:"255" doc:"Person to reply to"`
		Email         string         `json:"email" minLength:"1" doc:"Reply address"`
		Location      string         `json:"location,omitempty" maxLength:"255" doc:"Business location"`
		Message       string         `json:"message" minLength:"1" doc:"Free-form enquiry text"`
		Selection     *SelectionBody `json:"selection,omitempty" doc:"Optional shop selection"`
	}
}

type SubmitEnquiryOutput struct {
	Body EnquiryResponse
}

// --- Get Enquiry ---

type GetEnquiryInput struct {
	ID string `path:"id" doc:"Enquiry ID"`
}

type GetEnquiryOutput struct {
	Body EnquiryResponse
}

// --- List Enquiries ---

type ListEnquiriesInput struct {
	Status string `query:"status" required:"false" enum:"received,sending,sent,failed" doc:"Filter by dispatch state"`
	Limit  int    `query:"limit" required:"false" default:"50" doc:"Max results"`
	Offset int    `query:"offset" required:"false" default:"0" doc:"Pagination offset"`
}

type ListEnquiriesOutput struct {
	Body []EnquiryResponse
}

// --- Enquiry Events ---

type EnquiryEventInput struct {
	ID   string `path:"id" doc:"Enquiry ID"`
	Body struct {
		Event string `json:"event" doc:"Dispatch event to trigger" enum:"dispatch,dispatch_complete,dispatch_failed"`
	}
}

type EnquiryEventOutput struct {
	Body EnquiryResponse
}

// --- Catalog ---

// CatalogOption is one selectable shop option with its display data.
type CatalogOption struct {
	ID          string `json:"id" doc:"Selection identifier"`
	Name        string `json:"name" doc:"Display name"`
	Description string `json:"description" doc:"Short description"`
	Price       string `json:"price,omitempty" doc:"Starting-price label, where shown"`
}

type CatalogOutput struct {
	Body struct {
		BeanTypes []CatalogOption `json:"bean_types"`
		Stages    []CatalogOption `json:"stages"`
		Origins   []CatalogOption `json:"origins"`
	}
}

// --- Configurator Sessions ---

type CreateSessionOutput struct {
	Body SessionResponse
}

type GetSessionInput struct {
	ID string `path:"id" doc:"Session ID"`
}

type GetSessionOutput struct {
	Body SessionResponse
}

type SelectInput struct {
	ID   string `path:"id" doc:"Session ID"`
	Body SelectionBody
}

type SelectOutput struct {
	Body SessionResponse
}

type EnquireInput struct {
	ID string `path:"id" doc:"Session ID"`
}

type EnquireOutput struct {
	Body struct {
		URL string `json:"url" doc:"WhatsApp hand-off link"`
	}
}

type EndSessionInput struct {
	ID string `path:"id" doc:"Session ID"`
}

type EndSessionOutput struct{}

// --- Contact Forms ---

type OpenFormInput struct {
	Body struct {
		Selection *SelectionBody `json:"selection,omitempty" doc:"Optional shop selection to prefill the form"`
	}
}

type OpenFormOutput struct {
	Body FormResponse
}

type GetFormInput struct {
	ID string `path:"id" doc:"Form ID"`
}

type GetFormOutput struct {
	Body FormResponse
}

type SetFormFieldInput struct {
	ID   string `path:"id" doc:"Form ID"`
	Body struct {
		Name  string `json:"name" enum:"businessName,contactPerson,email,location,message,selectionSummary" doc:"Form field name"`
		Value string `json:"value" doc:"New field value"`
	}
}

type SetFormFieldOutput struct {
	Body FormResponse
}

type SubmitFormInput struct {
	ID string `path:"id" doc:"Form ID"`
}

type SubmitFormOutput struct {
	Body struct {
		URL        string `json:"url" doc:"WhatsApp hand-off link"`
		StatusKind string `json:"status_kind"`
		StatusText string `json:"status_text"`
	}
}

type CloseFormInput struct {
	ID string `path:"id" doc:"Form ID"`
}

type CloseFormOutput struct{}

// Register adds all versioned API routes to the Huma API.
func Register(api huma.API, svc *app.EnquiryService, sessions *app.ConfiguratorService, forms *app.FormService) {
	huma.Register(api, huma.Operation{
		OperationID: "submit-enquiry",
		Method:      http.MethodPost,
		Path:        "/api/v1/enquiries",
		Summary:     "Submit a quote enquiry",
		Tags:        []string{"Enquiries"},
	}, func(ctx context.Context, input *SubmitEnquiryInput) (*SubmitEnquiryOutput, error) {
		in := domain.Inquiry{
			BusinessName:  input.Body.BusinessName,
			ContactPerson: input.Body.ContactPerson,
			Email:         input.Body.Email,
			Location:      input.Body.Location,
			Message:       input.Body.Message,
		}
		if input.Body.Selection != nil {
			if summary, err := input.Body.Selection.selection().Summary(); err == nil {
				in.SelectionSummary = summary
			}
		}

		enquiry, err := svc.Submit(ctx, in)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &SubmitEnquiryOutput{Body: toEnquiryResponse(enquiry)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-enquiry",
		Method:      http.MethodGet,
		Path:        "/api/v1/enquiries/{id}",
		Summary:     "Get an enquiry by ID",
		Tags:        []string{"Enquiries"},
	}, func(ctx context.Context, input *GetEnquiryInput) (*GetEnquiryOutput, error) {
		enquiry, err := svc.GetByID(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &GetEnquiryOutput{Body: toEnquiryResponse(enquiry)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-enquiries",
		Method:      http.MethodGet,
		Path:        "/api/v1/enquiries",
		Summary:     "List enquiries",
		Tags:        []string{"Enquiries"},
	}, func(ctx context.Context, input *ListEnquiriesInput) (*ListEnquiriesOutput, error) {
		filter := domain.ListFilter{
			Limit:  input.Limit,
			Offset: input.Offset,
		}
		if input.Status != "" {
			s := domain.DispatchStatus(input.Status)
			filter.Status = &s
		}

		enquiries, err := svc.List(ctx, filter)
		if err != nil {
			return nil, toHumaError(err)
		}

		resp := make([]EnquiryResponse, len(enquiries))
		for i, e := range enquiries {
			resp[i] = toEnquiryResponse(e)
		}
		return &ListEnquiriesOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "enquiry-event",
		Method:      http.MethodPost,
		Path:        "/api/v1/enquiries/{id}/events",
		Summary:     "Trigger a dispatch event",
		Description: "A dispatch event queues an asynchronous redelivery; the other events record the outcome directly.",
		Tags:        []string{"Enquiries"},
	}, func(ctx context.Context, input *EnquiryEventInput) (*EnquiryEventOutput, error) {
		event := domain.DispatchEvent(input.Body.Event)

		var enquiry domain.Enquiry
		var err error
		if event == domain.EventDispatch {
			enquiry, err = svc.Redispatch(ctx, input.ID)
		} else {
			enquiry, err = svc.Transition(ctx, input.ID, event)
		}
		if err != nil {
			return nil, toHumaError(err)
		}
		return &EnquiryEventOutput{Body: toEnquiryResponse(enquiry)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-catalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog",
		Summary:     "List the shop configurator options",
		Tags:        []string{"Configurator"},
	}, func(ctx context.Context, _ *struct{}) (*CatalogOutput, error) {
		out := &CatalogOutput{}
		for _, b := range domain.BeanTypes {
			e, _ := b.Entry()
			out.Body.BeanTypes = append(out.Body.BeanTypes, CatalogOption{
				ID: string(b), Name: e.Name, Description: e.Description, Price: e.Price,
			})
		}
		for _, s := range domain.Stages {
			e, _ := s.Entry()
			out.Body.Stages = append(out.Body.Stages, CatalogOption{
				ID: string(s), Name: e.Name, Description: e.Description, Price: e.Price,
			})
		}
		for _, o := range domain.Origins {
			e, _ := o.Entry()
			out.Body.Origins = append(out.Body.Origins, CatalogOption{
				ID: string(o), Name: e.Name, Description: e.Description, Price: e.Price,
			})
		}
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-session",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions",
		Summary:     "Start a shop configurator session",
		Tags:        []string{"Configurator"},
	}, func(ctx context.Context, _ *struct{}) (*CreateSessionOutput, error) {
		id, err := sessions.Start()
		if err != nil {
			return nil, toHumaError(err)
		}
		return &CreateSessionOutput{Body: toSessionResponse(id, domain.Selection{})}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-session",
		Method:      http.MethodGet,
		Path:        "/api/v1/sessions/{id}",
		Summary:     "Get a configurator session",
		Tags:        []string{"Configurator"},
	}, func(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
		sel, err := sessions.State(input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &GetSessionOutput{Body: toSessionResponse(input.ID, sel)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "select-option",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/selection",
		Summary:     "Choose configurator options",
		Description: "Each provided slot overwrites its prior choice; omitted slots are untouched.",
		Tags:        []string{"Configurator"},
	}, func(ctx context.Context, input *SelectInput) (*SelectOutput, error) {
		var sel domain.Selection
		var err error

		if input.Body.BeanType != "" {
			sel, err = sessions.SelectBean(input.ID, domain.BeanType(input.Body.BeanType))
			if err != nil {
				return nil, toHumaError(err)
			}
		}
		if input.Body.Stage != "" {
			sel, err = sessions.SelectStage(input.ID, domain.Stage(input.Body.Stage))
			if err != nil {
				return nil, toHumaError(err)
			}
		}
		if input.Body.Origin != "" {
			sel, err = sessions.SelectOrigin(input.ID, domain.Origin(input.Body.Origin))
			if err != nil {
				return nil, toHumaError(err)
			}
		}
		if input.Body.BeanType == "" && input.Body.Stage == "" && input.Body.Origin == "" {
			sel, err = sessions.State(input.ID)
			if err != nil {
				return nil, toHumaError(err)
			}
		}

		return &SelectOutput{Body: toSessionResponse(input.ID, sel)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "session-enquire",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/enquire",
		Summary:     "Build the WhatsApp enquiry link",
		Tags:        []string{"Configurator"},
	}, func(ctx context.Context, input *EnquireInput) (*EnquireOutput, error) {
		url, err := sessions.EnquiryLink(input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		out := &EnquireOutput{}
		out.Body.URL = url
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "end-session",
		Method:        http.MethodDelete,
		Path:          "/api/v1/sessions/{id}",
		Summary:       "End a configurator session",
		Tags:          []string{"Configurator"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error) {
		sessions.End(input.ID)
		return &EndSessionOutput{}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "open-form",
		Method:      http.MethodPost,
		Path:        "/api/v1/forms",
		Summary:     "Open a contact form session",
		Tags:        []string{"Contact Form"},
	}, func(ctx context.Context, input *OpenFormInput) (*OpenFormOutput, error) {
		var prefill domain.Selection
		if input.Body.Selection != nil {
			prefill = input.Body.Selection.selection()
		}

		id, err := forms.Open(prefill)
		if err != nil {
			return nil, toHumaError(err)
		}
		form, err := forms.Get(id)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &OpenFormOutput{Body: toFormResponse(id, form)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-form",
		Method:      http.MethodGet,
		Path:        "/api/v1/forms/{id}",
		Summary:     "Get a contact form session",
		Tags:        []string{"Contact Form"},
	}, func(ctx context.Context, input *GetFormInput) (*GetFormOutput, error) {
		form, err := forms.Get(input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &GetFormOutput{Body: toFormResponse(input.ID, form)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "set-form-field",
		Method:      http.MethodPost,
		Path:        "/api/v1/forms/{id}/fields",
		Summary:     "Update one form field",
		Tags:        []string{"Contact Form"},
	}, func(ctx context.Context, input *SetFormFieldInput) (*SetFormFieldOutput, error) {
		form, err := forms.Get(input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		if err := form.SetField(input.Body.Name, input.Body.Value); err != nil {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		return &SetFormFieldOutput{Body: toFormResponse(input.ID, form)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "submit-form",
		Method:      http.MethodPost,
		Path:        "/api/v1/forms/{id}/submit",
		Summary:     "Submit the form and get the WhatsApp link",
		Tags:        []string{"Contact Form"},
	}, func(ctx context.Context, input *SubmitFormInput) (*SubmitFormOutput, error) {
		form, err := forms.Get(input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}

		url, err := form.Submit()
		if err != nil {
			return nil, toHumaError(err)
		}

		status := form.Status()
		out := &SubmitFormOutput{}
		out.Body.URL = url
		out.Body.StatusKind = string(status.Kind)
		out.Body.StatusText = status.Text
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "close-form",
		Method:        http.MethodDelete,
		Path:          "/api/v1/forms/{id}",
		Summary:       "Close a contact form session",
		Tags:          []string{"Contact Form"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *CloseFormInput) (*CloseFormOutput, error) {
		forms.Close(input.ID)
		return &CloseFormOutput{}, nil
	})
}

// toHumaError translates domain errors to Huma HTTP errors.
func toHumaError(err error) error {
	if errors.Is(err, domain.ErrEnquiryNotFound) {
		return huma.Error404NotFound("enquiry not found")
	}
	if errors.Is(err, app.ErrSessionNotFound) {
		return huma.Error404NotFound("session not found")
	}
	if errors.Is(err, domain.ErrSelectionIncomplete) {
		return huma.Error409Conflict("complete all three steps first")
	}

	var missing *domain.MissingFieldError
	if errors.As(err, &missing) {
		return huma.Error422UnprocessableEntity(missing.Error())
	}

	var invalid *domain.InvalidEmailError
	if errors.As(err, &invalid) {
		return huma.Error422UnprocessableEntity(invalid.Error())
	}

	var trErr *domain.TransitionError
	if errors.As(err, &trErr) {
		return huma.Error422UnprocessableEntity(trErr.Error())
	}

	// A stored enquiry whose mail could not be delivered surfaces as a
	// gateway failure; the record is kept for redispatch.
	if errors.Is(err, app.ErrDeliveryFailed) {
		return huma.Error502BadGateway(domain.TransportText)
	}

	return huma.Error500InternalServerError("internal error")
}
