package ui

const themeInitScript = `(function(){
  var root=document.documentElement;
  var media=window.matchMedia('(prefers-color-scheme: dark)');
  function normalize(mode){
    return mode==='light'||mode==='dark'||mode==='auto'?mode:'auto';
  }
  function apply(mode){
    var selected=normalize(mode);
    var resolved=selected==='auto'?(media.matches?'dark':'light'):selected;
    root.setAttribute('data-color-mode',selected);
    root.setAttribute('data-light-theme',resolved);
    root.setAttribute('data-dark-theme','dark');
  }
  var stored='auto';
  try {
    stored=normalize(localStorage.getItem('lms-theme')||'auto');
  } catch (_) {}
  apply(stored);
  window.__lmsThemeApply=apply;
})();`

const themeBehaviorScript = `(function(){
  var root=document.documentElement;
  var media=window.matchMedia('(prefers-color-scheme: dark)');
  var apply=window.__lmsThemeApply||function(mode){
    var selected=mode==='light'||mode==='dark'||mode==='auto'?mode:'auto';
    var resolved=selected==='auto'?(media.matches?'dark':'light'):selected;
    root.setAttribute('data-color-mode',selected);
    root.setAttribute('data-light-theme',resolved);
    root.setAttribute('data-dark-theme','dark');
  };

  function selectedMode(){
    return root.getAttribute('data-color-mode')||'auto';
  }

  function setMode(mode){
    apply(mode);
    try { localStorage.setItem('lms-theme', mode); } catch (_) {}
  }

  var select=document.getElementById('theme-mode');
  if(select){
    select.value=selectedMode();
    select.addEventListener('change',function(e){
      var mode=e.target&&e.target.value?e.target.value:'auto';
      setMode(mode);
    });
  }

  var onSystemThemeChange=function(){
    if(selectedMode()==='auto'){ apply('auto'); }
  };
  if(media.addEventListener){
    media.addEventListener('change', onSystemThemeChange);
  } else if(media.addListener){
    media.addListener(onSystemThemeChange);
  }
})();`
